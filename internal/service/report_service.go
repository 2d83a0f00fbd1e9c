package service

import (
	"context"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"github.com/google/uuid"
)

type ReportService struct {
	reports  repository.ReportRepository
	posts    *PostService
	comments *CommentService
}

func NewReportService(reports repository.ReportRepository, posts *PostService, comments *CommentService) *ReportService {
	return &ReportService{
		reports:  reports,
		posts:    posts,
		comments: comments,
	}
}

// List returns every report, newest first. Moderator surface.
func (s *ReportService) List(ctx context.Context) ([]*domain.Report, error) {
	return s.reports.All(ctx)
}

type CreateReportInput struct {
	Reason    string
	PostID    *uuid.UUID
	CommentID *uuid.UUID
}

// Create verifies the reported target exists before persisting. Which of
// the two ids is set is decided by the endpoint the report came through.
func (s *ReportService) Create(ctx context.Context, input CreateReportInput, authorID uuid.UUID) (*domain.Report, error) {
	if input.PostID != nil {
		if _, err := s.posts.Get(ctx, *input.PostID); err != nil {
			return nil, err
		}
	}
	if input.CommentID != nil {
		if _, err := s.comments.Get(ctx, *input.CommentID); err != nil {
			return nil, err
		}
	}

	report := &domain.Report{
		ID:        uuid.New(),
		Reason:    input.Reason,
		AuthorID:  authorID,
		PostID:    input.PostID,
		CommentID: input.CommentID,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
