package directory

import "context"

type Directory interface {
	ListActive(ctx context.Context) ([]Recipient, error)
}
