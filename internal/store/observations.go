package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"md5tap/internal/observer"
)

// ObservationRecord is one persisted buffer observation.
type ObservationRecord struct {
	ID         int64
	RunID      string
	Sequence   uint64
	Source     string
	Size       uint64
	Algorithm  string
	Digest     string
	Timestamp  observer.Timestamp
	ObservedAt time.Time
}

// AddObservation appends one observation under the given run.
func (s *Store) AddObservation(ctx context.Context, runID string, alg string, obs observer.Observation) error {
	var offset any
	if obs.Timestamp.Valid {
		offset = obs.Timestamp.Value.Nanoseconds()
	}
	observedAt := obs.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO observations (run_id, sequence, source, size, algorithm, digest, stream_offset_ns, observed_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		int64(obs.Sequence),
		obs.Source,
		int64(obs.Size),
		alg,
		obs.Digest.Hex(),
		offset,
		observedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("add observation: %w", err)
	}
	return nil
}

// RecentObservations returns the newest observations, most recent first.
func (s *Store) RecentObservations(ctx context.Context, limit int) ([]ObservationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, sequence, source, size, algorithm, digest, stream_offset_ns, observed_at
         FROM observations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	var records []ObservationRecord
	for rows.Next() {
		rec, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ObservationsForRun returns a run's observations in buffer order.
func (s *Store) ObservationsForRun(ctx context.Context, runID string) ([]ObservationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, sequence, source, size, algorithm, digest, stream_offset_ns, observed_at
         FROM observations WHERE run_id = ? ORDER BY sequence ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run observations: %w", err)
	}
	defer rows.Close()

	var records []ObservationRecord
	for rows.Next() {
		rec, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanObservation(rows *sql.Rows) (ObservationRecord, error) {
	var (
		rec        ObservationRecord
		sequence   int64
		size       int64
		offset     sql.NullInt64
		observedAt string
	)
	if err := rows.Scan(&rec.ID, &rec.RunID, &sequence, &rec.Source, &size, &rec.Algorithm, &rec.Digest, &offset, &observedAt); err != nil {
		return ObservationRecord{}, fmt.Errorf("scan observation: %w", err)
	}
	rec.Sequence = uint64(sequence)
	rec.Size = uint64(size)
	if offset.Valid {
		rec.Timestamp = observer.At(time.Duration(offset.Int64))
	}
	parsed, err := time.Parse(time.RFC3339Nano, observedAt)
	if err != nil {
		return ObservationRecord{}, fmt.Errorf("parse observation time: %w", err)
	}
	rec.ObservedAt = parsed
	return rec, nil
}
