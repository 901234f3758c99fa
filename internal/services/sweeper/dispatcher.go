package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
)

// Outcome is the result of one send attempt. Nil Err means delivered.
type Outcome struct {
	Recipient uuid.UUID
	Err       error
}

// Dispatcher sends one decision's notification to each recipient.
// Sends are independent; a failure for one recipient never blocks the
// rest. Ledger writes stay with the caller.
type Dispatcher struct {
	Push    push.Sender
	Timeout time.Duration
	Log     *zap.Logger
}

func NewDispatcher(sender push.Sender, timeout time.Duration, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		Push:    sender,
		Timeout: timeout,
		Log:     log.With(zap.String("component", "sweeper.dispatcher")),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, dec Decision) []Outcome {
	out := make([]Outcome, 0, len(dec.Recipients))
	for _, rcpt := range dec.Recipients {
		err := d.send(ctx, rcpt, dec.Message)
		if err != nil {
			d.Log.Warn("dispatch failed",
				zap.String("work_order_id", dec.WorkOrder.ID.String()),
				zap.String("level", string(dec.Level)),
				zap.String("recipient", rcpt.String()),
				zap.Error(err),
			)
		}
		out = append(out, Outcome{Recipient: rcpt, Err: err})
	}
	return out
}

func (d *Dispatcher) send(ctx context.Context, to uuid.UUID, msg push.Message) error {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	return d.Push.Send(ctx, to, msg)
}
