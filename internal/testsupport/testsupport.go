// Package testsupport provides shared fixtures for md5tap tests.
package testsupport

import (
	"path/filepath"
	"sync"
	"testing"

	"md5tap/internal/config"
	"md5tap/internal/observer"
	"md5tap/internal/store"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Watch.Dir = filepath.Join(base, "watch")
	cfg.Watch.SettleSeconds = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAlgorithm overrides the digest algorithm on the test config.
func WithAlgorithm(alg string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Observer.Algorithm = alg
	}
}

// WithChunkSize overrides the streaming chunk size on the test config.
func WithChunkSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Observer.ChunkSize = size
	}
}

// MustOpenStore opens the observation store for the config and closes it
// when the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}

// CaptureSink records every observation and notice it receives, for
// asserting on sink traffic in tests.
type CaptureSink struct {
	mu           sync.Mutex
	observations []observer.Observation
	notices      int
}

func (c *CaptureSink) Report(obs observer.Observation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observations = append(c.observations, obs)
}

func (c *CaptureSink) Notice(observer.Observation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices++
}

// Observations returns a copy of everything reported so far.
func (c *CaptureSink) Observations() []observer.Observation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]observer.Observation, len(c.observations))
	copy(out, c.observations)
	return out
}

// Notices returns how many verbose notices were delivered.
func (c *CaptureSink) Notices() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notices
}
