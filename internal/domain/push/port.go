package push

import (
	"context"

	"github.com/google/uuid"
)

// Sender delivers one notification to one user. An error means the
// notification did not reach any of the user's devices.
type Sender interface {
	Send(ctx context.Context, to uuid.UUID, msg Message) error
}
