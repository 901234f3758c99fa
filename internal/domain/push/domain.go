package push

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	URL         string    `json:"url"`
	Tag         string    `json:"tag"`
	WorkOrderID uuid.UUID `json:"work_order_id"`
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
