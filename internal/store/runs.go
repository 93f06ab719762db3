package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"md5tap/internal/digest"
)

// Run is one persisted stream run.
type Run struct {
	ID           string
	Source       string
	Algorithm    digest.Algorithm
	StartedAt    time.Time
	FinishedAt   time.Time
	Finished     bool
	Buffers      uint64
	Bytes        uint64
	StreamDigest string
}

// ErrRunNotFound indicates a run ID with no matching row.
var ErrRunNotFound = errors.New("run not found")

// StartRun records the beginning of a stream run.
func (s *Store) StartRun(ctx context.Context, id, source string, alg digest.Algorithm) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, algorithm, started_at) VALUES (?, ?, ?, ?)`,
		id, source, alg.String(), now,
	)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	return nil
}

// FinishRun records a run's totals once the stream has been fully observed.
func (s *Store) FinishRun(ctx context.Context, id string, buffers, bytes uint64, streamDigest string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, buffers = ?, bytes = ?, stream_digest = ? WHERE id = ?`,
		now, int64(buffers), int64(bytes), streamDigest, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// RecentRuns returns the newest runs, most recent first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, algorithm, started_at, finished_at, buffers, bytes, stream_digest
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run          Run
		algorithm    string
		startedAt    string
		finishedAt   sql.NullString
		buffers      int64
		bytes        int64
		streamDigest sql.NullString
	)
	if err := rows.Scan(&run.ID, &run.Source, &algorithm, &startedAt, &finishedAt, &buffers, &bytes, &streamDigest); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	alg, err := digest.ParseAlgorithm(algorithm)
	if err != nil {
		return Run{}, err
	}
	run.Algorithm = alg
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return Run{}, fmt.Errorf("parse run start time: %w", err)
	}
	if finishedAt.Valid {
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String); err != nil {
			return Run{}, fmt.Errorf("parse run finish time: %w", err)
		}
		run.Finished = true
	}
	run.Buffers = uint64(buffers)
	run.Bytes = uint64(bytes)
	if streamDigest.Valid {
		run.StreamDigest = streamDigest.String
	}
	return run, nil
}
