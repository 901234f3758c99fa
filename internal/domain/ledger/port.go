package ledger

import (
	"context"

	"github.com/google/uuid"
)

type Repo interface {
	// SentLevels returns every (work order, level) pair already recorded
	// for the given work orders, in one batched read.
	SentLevels(ctx context.Context, workOrderIDs []uuid.UUID) (SentSet, error)

	// Record appends an entry if the (work order, level, recipient)
	// triple is not present yet. Concurrent sweeps racing on the same
	// triple leave exactly one row.
	Record(ctx context.Context, e *Entry) error
}
