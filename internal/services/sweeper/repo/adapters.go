package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/directory"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/event"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/ledger"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/policy"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/workorder"
)

type PolicySource struct{ R policy.Store }
type OrderSource struct{ R workorder.Source }
type RecipientDirectory struct{ R directory.Directory }
type ReminderLedger struct{ R ledger.Repo }
type Events struct{ P event.ReminderEvents }

func (a PolicySource) Load(ctx context.Context) (policy.Set, error) {
	return a.R.Load(ctx)
}

func (a OrderSource) ListUnresolved(ctx context.Context) ([]*workorder.WorkOrder, error) {
	return a.R.ListUnresolved(ctx)
}

func (a RecipientDirectory) ListActive(ctx context.Context) ([]directory.Recipient, error) {
	return a.R.ListActive(ctx)
}

func (a ReminderLedger) SentLevels(ctx context.Context, ids []uuid.UUID) (ledger.SentSet, error) {
	return a.R.SentLevels(ctx, ids)
}

func (a ReminderLedger) Record(ctx context.Context, e *ledger.Entry) error {
	return a.R.Record(ctx, e)
}

func (e Events) Enabled() bool { return e.P != nil }

func (e Events) PublishReminderSent(ctx context.Context, ev event.ReminderSent) error {
	return e.P.PublishReminderSent(ctx, ev)
}
