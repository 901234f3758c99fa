package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/ledger"
)

var _ ledger.Repo = (*LedgerRepoImpl)(nil)

type LedgerRepoImpl struct{ db *DB }

func NewLedgerRepo(db *DB) *LedgerRepoImpl { return &LedgerRepoImpl{db: db} }

const (
	qSentLevels = `
SELECT DISTINCT work_order_id, level
FROM reminder_log
WHERE work_order_id = ANY($1);
`

	// Composite PK makes the append race-safe: two sweeps racing on the
	// same (work order, level, recipient) leave exactly one row.
	qRecord = `
INSERT INTO reminder_log (work_order_id, level, sent_to, sent_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (work_order_id, level, sent_to) DO NOTHING;
`
)

func (r *LedgerRepoImpl) SentLevels(ctx context.Context, workOrderIDs []uuid.UUID) (ledger.SentSet, error) {
	set := make(ledger.SentSet)
	if len(workOrderIDs) == 0 {
		return set, nil
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qSentLevels, workOrderIDs)
	if err != nil {
		return nil, fmt.Errorf("query reminder log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			level ledger.Level
		)
		if err := rows.Scan(&id, &level); err != nil {
			return nil, fmt.Errorf("scan reminder log: %w", err)
		}
		set.Add(id, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return set, nil
}

func (r *LedgerRepoImpl) Record(ctx context.Context, e *ledger.Entry) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.Pool.Exec(ctx, qRecord, e.WorkOrderID, e.Level, e.SentTo, e.SentAt); err != nil {
		return fmt.Errorf("insert reminder log: %w", err)
	}
	return nil
}
