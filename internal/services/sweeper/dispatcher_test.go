package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/push"
)

type blockingSender struct{}

func (blockingSender) Send(ctx context.Context, _ uuid.UUID, _ push.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func testDecision(now time.Time, recipients ...uuid.UUID) Decision {
	w := order(9*time.Hour, now, nil)
	return Decision{
		WorkOrder:  w,
		Level:      "escalation_admin",
		Recipients: recipients,
		Message:    messageFor("escalation_admin", w, now),
	}
}

func TestDispatcher_IndependentOutcomes(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sender := &fakeSender{fail: map[uuid.UUID]error{admin1: errors.New("boom")}}
	d := NewDispatcher(sender, time.Second, zap.NewNop())

	outs := d.Dispatch(context.Background(), testDecision(now, admin1, admin2))

	require.Len(t, outs, 2)
	assert.Equal(t, admin1, outs[0].Recipient)
	assert.Error(t, outs[0].Err)
	assert.Equal(t, admin2, outs[1].Recipient)
	assert.NoError(t, outs[1].Err)
}

func TestDispatcher_TimeoutBoundsSend(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	d := NewDispatcher(blockingSender{}, 20*time.Millisecond, zap.NewNop())

	start := time.Now()
	outs := d.Dispatch(context.Background(), testDecision(now, admin1))

	require.Len(t, outs, 1)
	assert.ErrorIs(t, outs[0].Err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
