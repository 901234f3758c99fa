package kafka

import (
	"context"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/event"
)

type ReminderEventsKafka struct {
	p *Producer
}

func NewReminderEventsKafka(p *Producer) *ReminderEventsKafka { return &ReminderEventsKafka{p: p} }

var _ event.ReminderEvents = (*ReminderEventsKafka)(nil)

func (e *ReminderEventsKafka) PublishReminderSent(ctx context.Context, ev event.ReminderSent) error {
	return e.p.PublishJSON(ctx, []byte(ev.WorkOrderID.String()), ev)
}
