package postgres

import (
	"context"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// contentRepository implements the shared CRUD surface for any gorm model
// with a uuid primary key. Posts and comments both ride on it.
type contentRepository[T any] struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *contentRepository[domain.Post] {
	return &contentRepository[domain.Post]{db: db}
}

func (r *contentRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *contentRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *contentRepository[T]) All(ctx context.Context) ([]*T, error) {
	var entities []*T
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *contentRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *contentRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(new(T), "id = ?", id).Error
}

type commentRepository struct {
	contentRepository[domain.Comment]
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{contentRepository[domain.Comment]{db: db}}
}

func (r *commentRepository) AllByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
