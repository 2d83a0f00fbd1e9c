package service

import (
	"context"
	"fmt"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"github.com/google/uuid"
)

type PostService struct {
	contentService[domain.Post, *domain.Post]
}

func NewPostService(posts repository.ContentRepository[domain.Post], reactions repository.ReactionRepository) *PostService {
	return &PostService{contentService[domain.Post, *domain.Post]{
		repo:              posts,
		reactions:         reactions,
		errNotFound:       domain.ErrPostNotFound,
		errNotOwner:       domain.ErrNotPostOwner,
		errAlreadyReacted: domain.ErrAlreadyLikedPost,
	}}
}

type CreatePostInput struct {
	Title   string
	Body    string
	IsDraft bool
}

type UpdatePostInput struct {
	Title   *string
	Body    *string
	IsDraft *bool
}

func (s *PostService) Create(ctx context.Context, input CreatePostInput, authorID uuid.UUID) (*domain.Post, error) {
	post := &domain.Post{
		ID:       uuid.New(),
		Title:    input.Title,
		Body:     input.Body,
		IsDraft:  input.IsDraft,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id uuid.UUID, input UpdatePostInput, userID uuid.UUID) (*domain.Post, error) {
	post, err := s.authorize(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = *input.Body
	}
	if input.IsDraft != nil {
		post.IsDraft = *input.IsDraft
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeleteWithMessage(ctx context.Context, id, userID uuid.UUID) (string, error) {
	if err := s.Delete(ctx, id, userID); err != nil {
		return "", err
	}
	return fmt.Sprintf("deleted post with id: %s", id), nil
}
