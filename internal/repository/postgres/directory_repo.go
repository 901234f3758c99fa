package postgres

import (
	"context"
	"fmt"

	"github.com/AdrianMoldovan/Mentenix/internal/domain/directory"
)

var _ directory.Directory = (*DirectoryRepoImpl)(nil)

type DirectoryRepoImpl struct{ db *DB }

func NewDirectoryRepo(db *DB) *DirectoryRepoImpl { return &DirectoryRepoImpl{db: db} }

const qListActive = `
SELECT id, full_name, role, active
FROM profiles
WHERE active = TRUE AND role IN ('admin', 'manager', 'technician');
`

func (r *DirectoryRepoImpl) ListActive(ctx context.Context) ([]directory.Recipient, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qListActive)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var out []directory.Recipient
	for rows.Next() {
		var rec directory.Recipient
		if err := rows.Scan(&rec.ID, &rec.FullName, &rec.Role, &rec.Active); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
