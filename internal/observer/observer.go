package observer

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"md5tap/internal/digest"
)

// ErrInvalidBuffer is returned when Observe is handed a nil buffer. It is
// the observer's only failure mode; no observation is produced and nothing
// is reported when it fires.
var ErrInvalidBuffer = errors.New("invalid buffer")

// Notice is the fixed line logged per buffer when verbose mode is on. It is
// carried over verbatim from the filter this tool replaces.
const Notice = "I'm plugged, therefore I'm in."

// Sink receives every observation the moment it is made. Implementations
// shared across concurrent observers must serialize their own writes;
// Report must not fail the observation (sinks record delivery problems
// themselves).
type Sink interface {
	Report(obs Observation)
}

// Observer fingerprints buffers and reports the results. It holds no
// cross-call state: each Observe call digests with a fresh hash, so a
// buffer's observation can never be influenced by its neighbors. A single
// Observer may be used from multiple goroutines.
type Observer struct {
	alg     digest.Algorithm
	sink    Sink
	verbose atomic.Bool
}

// Option configures an Observer.
type Option func(*Observer)

// WithVerbose sets the initial verbose state.
func WithVerbose(on bool) Option {
	return func(o *Observer) { o.verbose.Store(on) }
}

// New builds an Observer reporting to sink. A nil sink discards
// observations, which is only useful in tests.
func New(alg digest.Algorithm, sink Sink, opts ...Option) (*Observer, error) {
	if alg.Size() == 0 {
		return nil, fmt.Errorf("unsupported digest algorithm %q", alg)
	}
	o := &Observer{alg: alg, sink: sink}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Algorithm returns the algorithm this observer fingerprints with.
func (o *Observer) Algorithm() digest.Algorithm { return o.alg }

// SetVerbose toggles the per-buffer notice. Safe to call concurrently with
// Observe; a call in flight may see the previous value, which is harmless.
func (o *Observer) SetVerbose(on bool) { o.verbose.Store(on) }

// Verbose reports the current verbose state.
func (o *Observer) Verbose() bool { return o.verbose.Load() }

// Observe fingerprints one buffer and reports the observation.
//
// The buffer's bytes are read front to back exactly once and never
// modified; once Observe returns the caller may forward the buffer
// downstream immediately. The empty buffer is legal and yields the
// algorithm's well-known empty digest. Only a nil buffer fails.
func (o *Observer) Observe(buf *Buffer) (Observation, error) {
	if buf == nil {
		return Observation{}, ErrInvalidBuffer
	}

	// Fresh state per call keeps observations independent of each other.
	h, err := digest.New(o.alg)
	if err != nil {
		return Observation{}, err
	}
	h.Write(buf.Data)

	obs := Observation{
		Size:       uint64(len(buf.Data)),
		Digest:     digest.FromHash(o.alg, h),
		Timestamp:  buf.Timestamp,
		Sequence:   buf.Sequence,
		Source:     buf.Source,
		ObservedAt: time.Now().UTC(),
	}

	if o.verbose.Load() {
		if n, ok := o.sink.(NoticeSink); ok {
			n.Notice(obs)
		}
	}
	if o.sink != nil {
		o.sink.Report(obs)
	}
	return obs, nil
}

// NoticeSink is implemented by sinks that can surface the verbose notice
// in addition to regular observations.
type NoticeSink interface {
	Notice(obs Observation)
}
