package workorder

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
)

// WorkOrder is the read-only snapshot the reminder pipeline consumes.
// The work-order management app owns the full record; only unresolved
// orders (open or in_progress) ever reach this service.
type WorkOrder struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DisplayName string     `json:"display_name"`
}

// AgeHours is the wall-clock age at the evaluation instant.
func (w *WorkOrder) AgeHours(now time.Time) float64 {
	return now.Sub(w.CreatedAt).Hours()
}
