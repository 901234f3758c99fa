package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type SubscriptionRepoImpl struct{ db *DB }

func NewSubscriptionRepo(db *DB) *SubscriptionRepoImpl { return &SubscriptionRepoImpl{db: db} }

const qTokensByUser = `
SELECT token
FROM push_subscriptions
WHERE user_id = $1
ORDER BY created_at;
`

func (r *SubscriptionRepoImpl) TokensByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qTokensByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("query push subscriptions: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
