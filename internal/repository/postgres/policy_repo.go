package postgres

import (
	"context"
	"fmt"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/policy"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/workorder"
)

var _ policy.Store = (*PolicyRepoImpl)(nil)

type PolicyRepoImpl struct{ db *DB }

func NewPolicyRepo(db *DB) *PolicyRepoImpl { return &PolicyRepoImpl{db: db} }

const qPolicies = `
SELECT priority, first_reminder_hours, escalate_manager_hours, escalate_admin_hours
FROM reminder_settings;
`

func (r *PolicyRepoImpl) Load(ctx context.Context) (policy.Set, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qPolicies)
	if err != nil {
		return nil, fmt.Errorf("query reminder settings: %w", err)
	}
	defer rows.Close()

	set := make(policy.Set)
	for rows.Next() {
		var (
			prio string
			pol  policy.ReminderPolicy
		)
		if err := rows.Scan(&prio, &pol.FirstReminderHours, &pol.EscalateManagerHours, &pol.EscalateAdminHours); err != nil {
			return nil, fmt.Errorf("scan reminder setting: %w", err)
		}
		set[workorder.Priority(prio)] = pol
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return set, nil
}
