package event

import "context"

type ReminderEvents interface {
	PublishReminderSent(ctx context.Context, ev ReminderSent) error
}
