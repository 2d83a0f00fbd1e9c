package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxDone    OutboxStatus = "DONE"
	OutboxFailed  OutboxStatus = "FAILED"
)

// OutboxMessage is a persisted side-effect task. Rows are written in the
// same request that triggered them and consumed by the background
// dispatcher, giving at-least-once delivery instead of a fire-and-forget
// in-process callback.
type OutboxMessage struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Topic     string         `json:"topic" gorm:"not null;index"`
	Payload   datatypes.JSON `json:"payload"`
	Status    OutboxStatus   `json:"status" gorm:"type:varchar(16);not null;default:PENDING;index"`
	Attempts  int            `json:"attempts" gorm:"not null;default:0"`
	LastError string         `json:"lastError,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
