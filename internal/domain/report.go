package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report flags either a post or a comment; exactly one of PostID/CommentID
// is set, decided by the endpoint the report came through.
type Report struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Reason    string     `json:"reason" gorm:"not null"`
	AuthorID  uuid.UUID  `json:"authorId" gorm:"type:uuid;not null;index"`
	PostID    *uuid.UUID `json:"postId,omitempty" gorm:"type:uuid;index"`
	CommentID *uuid.UUID `json:"commentId,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"createdAt"`
}
