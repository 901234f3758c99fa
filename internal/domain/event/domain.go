package event

import (
	"time"

	"github.com/google/uuid"
)

// ReminderSent is published after each successful push dispatch, for
// downstream audit/analytics consumers.
type ReminderSent struct {
	WorkOrderID uuid.UUID `json:"work_order_id"`
	Level       string    `json:"level"`
	Recipient   uuid.UUID `json:"recipient"`
	SentAt      time.Time `json:"sent_at"`
}
