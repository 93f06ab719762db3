package observer

import (
	"time"

	"md5tap/internal/digest"
)

// Observation is the immutable per-buffer record the observer emits: the
// buffer's exact byte size and the digest of its contents, plus whatever
// timing and provenance metadata the caller supplied.
type Observation struct {
	// Size is the byte length of the observed buffer, including 0.
	Size uint64
	// Digest is the fingerprint of the buffer's bytes.
	Digest digest.Digest
	// Timestamp is the buffer's pipeline-relative timestamp, if it had one.
	Timestamp Timestamp
	// Sequence is the 1-based position of the buffer within its stream.
	Sequence uint64
	// Source labels the stream the buffer came from ("-" for stdin).
	Source string
	// ObservedAt is the wall-clock time the observation was made.
	ObservedAt time.Time
}
