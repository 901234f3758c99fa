package postgres

import (
	"context"
	"fmt"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/workorder"
)

var _ workorder.Source = (*WorkOrderRepoImpl)(nil)

type WorkOrderRepoImpl struct{ db *DB }

func NewWorkOrderRepo(db *DB) *WorkOrderRepoImpl { return &WorkOrderRepoImpl{db: db} }

// Display name prefers the equipment the order targets, then the
// location; some legacy orders carry neither.
const qListUnresolved = `
SELECT w.id, w.title, w.priority, w.status, w.created_at, w.assigned_to,
       COALESCE(e.name, l.name, '') AS display_name
FROM work_orders w
LEFT JOIN equipment e ON e.id = w.equipment_id
LEFT JOIN locations l ON l.id = w.location_id
WHERE w.status IN ('open', 'in_progress')
ORDER BY w.created_at;
`

func (r *WorkOrderRepoImpl) ListUnresolved(ctx context.Context) ([]*workorder.WorkOrder, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qListUnresolved)
	if err != nil {
		return nil, fmt.Errorf("query unresolved work orders: %w", err)
	}
	defer rows.Close()

	var out []*workorder.WorkOrder
	for rows.Next() {
		var w workorder.WorkOrder
		if err := rows.Scan(&w.ID, &w.Title, &w.Priority, &w.Status, &w.CreatedAt, &w.AssignedTo, &w.DisplayName); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
