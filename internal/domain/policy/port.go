package policy

import "context"

type Store interface {
	Load(ctx context.Context) (Set, error)
}
