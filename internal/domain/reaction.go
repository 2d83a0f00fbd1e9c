package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionDislike ReactionType = "DISLIKE"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is the target-agnostic view of a like/dislike, returned by the
// API regardless of whether the target is a post or a comment.
type Reaction struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	TargetID  uuid.UUID    `json:"targetId"`
	Type      ReactionType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ReactionUser is the slice of a user exposed when listing who reacted.
type ReactionUser struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"userName"`
}

// ReactionDetail pairs a reaction with the user who made it.
type ReactionDetail struct {
	ID        uuid.UUID    `json:"id"`
	Type      ReactionType `json:"type"`
	User      ReactionUser `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

// The composite unique index backs the one-reaction-per-(user,target)
// invariant below the service-layer pre-check.
type PostReaction struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_post_reaction_user_post"`
	PostID    uuid.UUID    `json:"postId" gorm:"type:uuid;not null;uniqueIndex:idx_post_reaction_user_post"`
	Type      ReactionType `json:"type" gorm:"type:varchar(8);not null"`
	CreatedAt time.Time    `json:"createdAt"`
}

type CommentReaction struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_comment_reaction_user_comment"`
	CommentID uuid.UUID    `json:"commentId" gorm:"type:uuid;not null;uniqueIndex:idx_comment_reaction_user_comment"`
	Type      ReactionType `json:"type" gorm:"type:varchar(8);not null"`
	CreatedAt time.Time    `json:"createdAt"`
}
