package sweeper

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/directory"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/event"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/ledger"
	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
	"github.com/AdrianMoldovan/Mentenix/internal/obs"
	"github.com/AdrianMoldovan/Mentenix/internal/obs/retry"
	"github.com/AdrianMoldovan/Mentenix/internal/services/sweeper/repo"
)

// Summary is what one sweep reports back to the runner.
type Summary struct {
	WorkOrdersChecked int `json:"work_orders_checked"`
	RemindersSent     int `json:"reminders_sent"`
	RemindersFailed   int `json:"reminders_failed"`
}

type Usecase struct {
	Policies repo.PolicySource
	Orders   repo.OrderSource
	People   repo.RecipientDirectory
	Ledger   repo.ReminderLedger
	Events   repo.Events

	Eval  *Evaluator
	Disp  *Dispatcher
	Clock push.Clock
	Log   *zap.Logger

	// MaxParallel bounds concurrent decision dispatch so the push
	// transport is not overwhelmed.
	MaxParallel int
}

func NewUC(
	policies repo.PolicySource,
	orders repo.OrderSource,
	people repo.RecipientDirectory,
	lg repo.ReminderLedger,
	events repo.Events,
	eval *Evaluator,
	disp *Dispatcher,
	clock push.Clock,
	log *zap.Logger,
	maxParallel int,
) *Usecase {
	return &Usecase{
		Policies:    policies,
		Orders:      orders,
		People:      people,
		Ledger:      lg,
		Events:      events,
		Eval:        eval,
		Disp:        disp,
		Clock:       clock,
		Log:         log,
		MaxParallel: maxParallel,
	}
}

// Sweep runs one full pass: load policy and work orders (both fatal on
// error), batch-load ledger state and active recipients, evaluate, then
// dispatch. Ledger entries are written per successful recipient only,
// so a failed send is retried naturally on the next sweep.
func (u *Usecase) Sweep(ctx context.Context) (Summary, error) {
	tr := otel.Tracer("sweeper.uc")
	ctx, span := tr.Start(ctx, "sweeper.sweep")
	defer span.End()

	log := obs.WithTrace(ctx, u.Log)
	now := u.Clock.Now().UTC()

	policies, err := u.Policies.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return Summary{}, fmt.Errorf("load reminder policies: %w", err)
	}

	orders, err := u.Orders.ListUnresolved(ctx)
	if err != nil {
		span.RecordError(err)
		return Summary{}, fmt.Errorf("list unresolved work orders: %w", err)
	}
	if len(orders) == 0 {
		span.SetAttributes(attribute.Int("sweep.checked", 0))
		return Summary{}, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, w := range orders {
		ids = append(ids, w.ID)
	}

	sent, err := u.Ledger.SentLevels(ctx, ids)
	if err != nil {
		span.RecordError(err)
		return Summary{}, fmt.Errorf("load reminder log: %w", err)
	}

	people, err := u.People.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		return Summary{}, fmt.Errorf("load recipients: %w", err)
	}

	decisions := u.Eval.Evaluate(orders, policies, sent, directory.NewIndex(people), now)
	span.SetAttributes(
		attribute.Int("sweep.checked", len(orders)),
		attribute.Int("sweep.decisions", len(decisions)),
	)

	sum := Summary{WorkOrdersChecked: len(orders)}
	if len(decisions) == 0 {
		return sum, nil
	}

	workers := u.MaxParallel
	if workers <= 0 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, workers)
	)
	for _, dec := range decisions {
		wg.Add(1)
		sem <- struct{}{}
		go func(dec Decision) {
			defer wg.Done()
			defer func() { <-sem }()

			_, dspan := tr.Start(ctx, "sweeper.dispatch",
				trace.WithAttributes(
					attribute.String("work_order.id", dec.WorkOrder.ID.String()),
					attribute.String("reminder.level", string(dec.Level)),
					attribute.Int("reminder.recipients", len(dec.Recipients)),
				),
			)
			defer dspan.End()

			sentN, failedN := u.dispatchOne(ctx, log, dec)
			dspan.SetAttributes(
				attribute.Int("reminder.sent", sentN),
				attribute.Int("reminder.failed", failedN),
			)

			mu.Lock()
			sum.RemindersSent += sentN
			sum.RemindersFailed += failedN
			mu.Unlock()
		}(dec)
	}
	wg.Wait()

	return sum, nil
}

func (u *Usecase) dispatchOne(ctx context.Context, log *zap.Logger, dec Decision) (sentN, failedN int) {
	for _, o := range u.Disp.Dispatch(ctx, dec) {
		if o.Err != nil {
			failedN++
			continue
		}
		sentN++

		entry := &ledger.Entry{
			WorkOrderID: dec.WorkOrder.ID,
			Level:       dec.Level,
			SentTo:      o.Recipient,
			SentAt:      u.Clock.Now().UTC(),
		}
		if err := u.Ledger.Record(ctx, entry); err != nil {
			// Delivered but unrecorded: the next sweep may re-send this
			// level. Accepted duplicate-risk window.
			log.Warn("reminder log write failed",
				zap.String("work_order_id", dec.WorkOrder.ID.String()),
				zap.String("level", string(dec.Level)),
				zap.String("recipient", o.Recipient.String()),
				zap.Error(err),
			)
		}

		u.publish(ctx, log, event.ReminderSent{
			WorkOrderID: dec.WorkOrder.ID,
			Level:       string(dec.Level),
			Recipient:   o.Recipient,
			SentAt:      entry.SentAt,
		})
	}
	return sentN, failedN
}

func (u *Usecase) publish(ctx context.Context, log *zap.Logger, ev event.ReminderSent) {
	if !u.Events.Enabled() {
		return
	}
	_ = retry.Do(ctx, func() error {
		return u.Events.PublishReminderSent(ctx, ev)
	}, retry.DefaultPublishPolicy(log))
}
