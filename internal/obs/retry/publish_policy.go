package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultPublishPolicy bounds retries of event publication. Publishing
// is best-effort: the caller logs exhaustion and moves on.
func DefaultPublishPolicy(log *zap.Logger) Policy {
	return Policy{
		Name:     "reminder_events_publish",
		Attempts: 4,
		Backoff:  ExpoJitter{Base: 200 * time.Millisecond, Max: 5 * time.Second, Jitter: 0.2},
		Retryable: func(err error) bool {
			return err != nil
		},
		OnAttempt: func(i int, err error) {
			if log != nil {
				log.Warn("event publish retry", zap.Int("attempt", i+1), zap.Error(err))
			}
		},
		OnExhaust: func(err error) {
			if log != nil && !errors.Is(err, context.Canceled) {
				log.Error("event publish retries exhausted", zap.Error(err))
			}
		},
	}
}
