package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Level is an escalation level in increasing severity.
type Level string

const (
	LevelFirstReminder     Level = "first_reminder"
	LevelEscalationManager Level = "escalation_manager"
	LevelEscalationAdmin   Level = "escalation_admin"
)

func (l Level) Severity() int {
	switch l {
	case LevelEscalationAdmin:
		return 3
	case LevelEscalationManager:
		return 2
	case LevelFirstReminder:
		return 1
	}
	return 0
}

// Entry is one append-only ledger row. Written only after a successful
// dispatch; never updated or deleted.
type Entry struct {
	WorkOrderID uuid.UUID `json:"work_order_id"`
	Level       Level     `json:"level"`
	SentTo      uuid.UUID `json:"sent_to"`
	SentAt      time.Time `json:"sent_at"`
}

type SentKey struct {
	WorkOrderID uuid.UUID
	Level       Level
}

// SentSet is the per-sweep snapshot of (work order, level) pairs that
// already have at least one ledger entry, regardless of recipient.
type SentSet map[SentKey]struct{}

func (s SentSet) Add(id uuid.UUID, level Level) {
	s[SentKey{WorkOrderID: id, Level: level}] = struct{}{}
}

func (s SentSet) Has(id uuid.UUID, level Level) bool {
	_, ok := s[SentKey{WorkOrderID: id, Level: level}]
	return ok
}
