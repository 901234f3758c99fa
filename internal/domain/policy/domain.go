package policy

import "github.com/AdrianMoldovan/Mentenix/internal/domain/workorder"

// ReminderPolicy holds the age thresholds (hours) for one priority.
// Nil escalation thresholds disable that level. Thresholds are taken
// as stored; monotonicity is not validated here.
type ReminderPolicy struct {
	FirstReminderHours   float64  `json:"first_reminder_hours"`
	EscalateManagerHours *float64 `json:"escalate_manager_hours"`
	EscalateAdminHours   *float64 `json:"escalate_admin_hours"`
}

// Set is the immutable per-sweep policy snapshot, keyed by priority.
// A priority with no entry is simply never reminded.
type Set map[workorder.Priority]ReminderPolicy
