package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
)

type User struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName       string    `json:"firstName" gorm:"not null"`
	LastName        string    `json:"lastName" gorm:"not null"`
	UserName        string    `json:"userName" gorm:"uniqueIndex;not null"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string    `json:"-" gorm:"not null"`
	Role            Role      `json:"role" gorm:"type:varchar(16);not null;default:USER"`
	IsPublicEmail   bool      `json:"isPublicEmail"`
	IsPublicName    bool      `json:"isPublicName"`
	IsVerified      bool      `json:"isVerified"`
	VerifyToken     string    `json:"-"`
	AccessTokenHash string    `json:"-"`
	RecoveryToken   string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserView is the shape of a user returned by the API. It never carries the
// password hash, role or timestamps; email and names only appear when the
// user opted into making them public.
type UserView struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"userName"`
	FirstName  string    `json:"firstName,omitempty"`
	LastName   string    `json:"lastName,omitempty"`
	Email      string    `json:"email,omitempty"`
	IsVerified bool      `json:"isVerified"`
}

func (u *User) View() UserView {
	v := UserView{
		ID:         u.ID,
		UserName:   u.UserName,
		IsVerified: u.IsVerified,
	}
	if u.IsPublicName {
		v.FirstName = u.FirstName
		v.LastName = u.LastName
	}
	if u.IsPublicEmail {
		v.Email = u.Email
	}
	return v
}
