package service

import (
	"context"
	"errors"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// contentService holds the rules posts and comments share: listing never
// includes drafts, mutations are gated on ownership before any write, and
// reactions are idempotent per (user, target).
type contentService[T any, PT interface {
	*T
	domain.Content
}] struct {
	repo      repository.ContentRepository[T]
	reactions repository.ReactionRepository

	errNotFound       error
	errNotOwner       error
	errAlreadyReacted error
}

func (s *contentService[T, PT]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.errNotFound
		}
		return nil, err
	}
	return entity, nil
}

// List returns everything that is not a draft. Owners do not see their own
// drafts here either; that asymmetry is intentional.
func (s *contentService[T, PT]) List(ctx context.Context) ([]*T, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*T, 0, len(all))
	for _, entity := range all {
		if !PT(entity).Draft() {
			visible = append(visible, entity)
		}
	}
	return visible, nil
}

// authorize fetches the entity and checks ownership. Runs before every
// mutation so a failed check never leaves a partial write.
func (s *contentService[T, PT]) authorize(ctx context.Context, id, userID uuid.UUID) (*T, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if PT(entity).OwnerID() != userID {
		return nil, s.errNotOwner
	}
	return entity, nil
}

func (s *contentService[T, PT]) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.authorize(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Reactions lists who reacted to the target and how.
func (s *contentService[T, PT]) Reactions(ctx context.Context, targetID uuid.UUID) ([]*domain.ReactionDetail, error) {
	if _, err := s.Get(ctx, targetID); err != nil {
		return nil, err
	}
	return s.reactions.AllByTarget(ctx, targetID)
}

func (s *contentService[T, PT]) React(ctx context.Context, userID, targetID uuid.UUID, typ domain.ReactionType) (*domain.Reaction, error) {
	if _, err := s.Get(ctx, targetID); err != nil {
		return nil, err
	}

	_, err := s.reactions.Get(ctx, userID, targetID)
	if err == nil {
		return nil, s.errAlreadyReacted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reaction := &domain.Reaction{
		ID:       uuid.New(),
		UserID:   userID,
		TargetID: targetID,
		Type:     typ,
	}
	if err := s.reactions.Create(ctx, reaction); err != nil {
		return nil, err
	}
	return reaction, nil
}
