package workorder

import "context"

type Source interface {
	ListUnresolved(ctx context.Context) ([]*WorkOrder, error)
}
