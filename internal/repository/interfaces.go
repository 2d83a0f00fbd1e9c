package repository

import (
	"context"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentRepository covers the CRUD surface shared by posts and comments.
type ContentRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	All(ctx context.Context) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	ContentRepository[domain.Comment]
	AllByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
}

// ReactionRepository persists likes/dislikes for one target kind. Create
// inserts the row and bumps the target's aggregate counter in a single
// transaction.
type ReactionRepository interface {
	Get(ctx context.Context, userID, targetID uuid.UUID) (*domain.Reaction, error)
	AllByTarget(ctx context.Context, targetID uuid.UUID) ([]*domain.ReactionDetail, error)
	Create(ctx context.Context, reaction *domain.Reaction) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	All(ctx context.Context) ([]*domain.Report, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, topic string, payload any) (*domain.OutboxMessage, error)
	Pending(ctx context.Context, limit int) ([]*domain.OutboxMessage, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause error, maxAttempts int) error
}

type Repositories struct {
	User            UserRepository
	Post            ContentRepository[domain.Post]
	Comment         CommentRepository
	PostReaction    ReactionRepository
	CommentReaction ReactionRepository
	Report          ReportRepository
	Outbox          OutboxRepository
}
