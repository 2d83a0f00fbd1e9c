package postgres

import (
	"context"
	"encoding/json"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *outboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Enqueue(ctx context.Context, topic string, payload any) (*domain.OutboxMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	msg := &domain.OutboxMessage{
		ID:      uuid.New(),
		Topic:   topic,
		Payload: datatypes.JSON(raw),
		Status:  domain.OutboxPending,
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *outboxRepository) Pending(ctx context.Context, limit int) ([]*domain.OutboxMessage, error) {
	var msgs []*domain.OutboxMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.OutboxPending).
		Order("created_at").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *outboxRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     domain.OutboxDone,
			"last_error": "",
		}).Error
}

// MarkFailed counts the attempt and keeps the message pending until the
// attempt budget is spent, at which point it goes to FAILED and stays
// queryable for inspection.
func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause error, maxAttempts int) error {
	return r.db.WithContext(ctx).
		Model(&domain.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause.Error(),
			"status": gorm.Expr(
				"CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
				maxAttempts, string(domain.OutboxFailed), string(domain.OutboxPending),
			),
		}).Error
}
