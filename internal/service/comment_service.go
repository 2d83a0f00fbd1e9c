package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	contentService[domain.Comment, *domain.Comment]
	comments repository.CommentRepository
	posts    repository.ContentRepository[domain.Post]
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.ContentRepository[domain.Post],
	reactions repository.ReactionRepository,
) *CommentService {
	return &CommentService{
		contentService: contentService[domain.Comment, *domain.Comment]{
			repo:              comments,
			reactions:         reactions,
			errNotFound:       domain.ErrCommentNotFound,
			errNotOwner:       domain.ErrNotCommentOwner,
			errAlreadyReacted: domain.ErrAlreadyLikedComment,
		},
		comments: comments,
		posts:    posts,
	}
}

type CreateCommentInput struct {
	Body    string
	IsDraft bool
}

type UpdateCommentInput struct {
	Body    *string
	IsDraft *bool
}

func (s *CommentService) Create(ctx context.Context, input CreateCommentInput, authorID, postID uuid.UUID) (*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		Body:     input.Body,
		IsDraft:  input.IsDraft,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost returns a post's published comments, drafts excluded like
// everywhere else.
func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	all, err := s.comments.AllByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	visible := make([]*domain.Comment, 0, len(all))
	for _, comment := range all {
		if !comment.IsDraft {
			visible = append(visible, comment)
		}
	}
	return visible, nil
}

func (s *CommentService) Update(ctx context.Context, id uuid.UUID, input UpdateCommentInput, userID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.authorize(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Body != nil {
		comment.Body = *input.Body
	}
	if input.IsDraft != nil {
		comment.IsDraft = *input.IsDraft
	}

	if err := s.repo.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteWithMessage(ctx context.Context, id, userID uuid.UUID) (string, error) {
	if err := s.Delete(ctx, id, userID); err != nil {
		return "", err
	}
	return fmt.Sprintf("deleted comment with id: %s", id), nil
}
