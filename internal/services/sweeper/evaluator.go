package sweeper

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/directory"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/ledger"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/policy"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/workorder"
)

// Decision is one (work order, level, recipients) escalation the sweep
// should dispatch.
type Decision struct {
	WorkOrder  *workorder.WorkOrder
	Level      ledger.Level
	Recipients []uuid.UUID
	Message    push.Message
}

// Evaluator decides escalations from in-memory snapshots only, so a
// sweep's decisions are a pure function of its inputs.
type Evaluator struct {
	log *zap.Logger
}

func NewEvaluator(log *zap.Logger) *Evaluator {
	return &Evaluator{log: log.With(zap.String("component", "sweeper.evaluator"))}
}

// Evaluate walks every unresolved work order once, using a single
// evaluation instant for all age comparisons. Per order, the most
// severe level its age qualifies for is selected; if that level is
// already in the ledger the order is done for this sweep, which keeps
// re-runs idempotent and never demotes to a lower level afterwards.
func (e *Evaluator) Evaluate(
	orders []*workorder.WorkOrder,
	policies policy.Set,
	sent ledger.SentSet,
	people directory.Index,
	now time.Time,
) []Decision {
	var out []Decision
	for _, w := range orders {
		pol, ok := policies[w.Priority]
		if !ok {
			e.log.Warn("no reminder policy for priority",
				zap.String("work_order_id", w.ID.String()),
				zap.String("priority", string(w.Priority)),
			)
			continue
		}

		level, due := dueLevel(pol, w.AgeHours(now))
		if !due || sent.Has(w.ID, level) {
			continue
		}

		recipients := targetsFor(level, w, people)
		if len(recipients) == 0 {
			// Nothing recorded; re-evaluated next sweep once a target exists.
			e.log.Debug("no recipients for escalation",
				zap.String("work_order_id", w.ID.String()),
				zap.String("level", string(level)),
			)
			continue
		}

		out = append(out, Decision{
			WorkOrder:  w,
			Level:      level,
			Recipients: recipients,
			Message:    messageFor(level, w, now),
		})
	}
	return out
}

// dueLevel picks the highest severity whose threshold the age has
// reached (>=). Thresholds left unset disable their level.
func dueLevel(pol policy.ReminderPolicy, ageHours float64) (ledger.Level, bool) {
	switch {
	case pol.EscalateAdminHours != nil && ageHours >= *pol.EscalateAdminHours:
		return ledger.LevelEscalationAdmin, true
	case pol.EscalateManagerHours != nil && ageHours >= *pol.EscalateManagerHours:
		return ledger.LevelEscalationManager, true
	case ageHours >= pol.FirstReminderHours:
		return ledger.LevelFirstReminder, true
	}
	return "", false
}

func targetsFor(level ledger.Level, w *workorder.WorkOrder, people directory.Index) []uuid.UUID {
	switch level {
	case ledger.LevelEscalationAdmin:
		return ids(people.ByRole(directory.RoleAdmin))
	case ledger.LevelEscalationManager:
		return ids(people.ByRole(directory.RoleManager))
	default:
		if w.AssignedTo != nil {
			// Assignee must still be an active profile.
			if _, ok := people.Lookup(*w.AssignedTo); ok {
				return []uuid.UUID{*w.AssignedTo}
			}
			return nil
		}
		return ids(people.ByRole(directory.RoleTechnician))
	}
}

func ids(recipients []directory.Recipient) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, r.ID)
	}
	return out
}
