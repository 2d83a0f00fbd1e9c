package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Body          string    `json:"body" gorm:"not null"`
	IsDraft       bool      `json:"isDraft"`
	AmountLike    int       `json:"amountLike" gorm:"not null;default:0"`
	AmountDislike int       `json:"amountDislike" gorm:"not null;default:0"`
	AuthorID      uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`
	PostID        uuid.UUID `json:"postId" gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (c *Comment) OwnerID() uuid.UUID { return c.AuthorID }
func (c *Comment) Draft() bool        { return c.IsDraft }
