package store

import (
	"context"
	"fmt"
	"time"
)

// Prune removes runs (and, via cascade, their observations) that started
// before the cutoff. It returns the number of runs removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE started_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return removed, nil
}

// Stats summarizes history volume for diagnostics.
type Stats struct {
	Runs         int64
	Observations int64
	Bytes        int64
}

// CollectStats counts stored rows and observed bytes.
func (s *Store) CollectStats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs`).Scan(&stats.Runs); err != nil {
		return Stats{}, fmt.Errorf("count runs: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1), COALESCE(SUM(size), 0) FROM observations`)
	if err := row.Scan(&stats.Observations, &stats.Bytes); err != nil {
		return Stats{}, fmt.Errorf("count observations: %w", err)
	}
	return stats, nil
}
