package store

import (
	"context"
	"log/slog"
	"sync"

	"md5tap/internal/logging"
	"md5tap/internal/observer"
)

// Sink adapts the Store into an observer.Sink so observations are
// persisted as they are made. Delivery problems are logged rather than
// surfaced to the observer: digesting must not fail because history
// storage hiccupped.
type Sink struct {
	mu        sync.Mutex
	store     *Store
	runID     string
	algorithm string
	logger    *slog.Logger
}

// NewSink builds a persisting sink for one run.
func (s *Store) NewSink(runID string, algorithm string, logger *slog.Logger) *Sink {
	return &Sink{
		store:     s,
		runID:     runID,
		algorithm: algorithm,
		logger:    logging.NewComponentLogger(logger, "store"),
	}
}

// Report persists the observation, serializing concurrent writers.
func (s *Sink) Report(obs observer.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.AddObservation(context.Background(), s.runID, s.algorithm, obs); err != nil {
		s.logger.Warn("observation not recorded",
			logging.String(logging.FieldRunID, s.runID),
			logging.Uint64(logging.FieldSequence, obs.Sequence),
			logging.Error(err),
		)
	}
}
