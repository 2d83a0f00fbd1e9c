package domain

import (
	"time"

	"github.com/google/uuid"
)

// Content is the common surface of post-like entities: everything that is
// owned by an author and can be kept as a draft.
type Content interface {
	OwnerID() uuid.UUID
	Draft() bool
}

type Post struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string    `json:"title" gorm:"not null"`
	Body          string    `json:"body" gorm:"not null"`
	IsDraft       bool      `json:"isDraft"`
	AmountLike    int       `json:"amountLike" gorm:"not null;default:0"`
	AmountDislike int       `json:"amountDislike" gorm:"not null;default:0"`
	AuthorID      uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p *Post) OwnerID() uuid.UUID { return p.AuthorID }
func (p *Post) Draft() bool        { return p.IsDraft }
