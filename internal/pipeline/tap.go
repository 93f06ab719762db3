package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"md5tap/internal/digest"
	"md5tap/internal/faults"
	"md5tap/internal/logging"
	"md5tap/internal/observer"
)

const defaultChunkSize = 64 * 1024

// Summary describes one completed stream run.
type Summary struct {
	Source  string
	Buffers uint64
	Bytes   uint64
	// StreamDigest fingerprints the whole stream, independent of how it
	// was chunked into buffers.
	StreamDigest digest.Digest
	Elapsed      time.Duration
}

// Tap pushes a stream through an observer buffer by buffer while copying
// it unchanged to a destination writer.
type Tap struct {
	obs       *observer.Observer
	chunkSize int
	logger    *slog.Logger
}

// Options configures a Tap.
type Options struct {
	// ChunkSize is the buffer size for streaming sources; zero selects
	// the default.
	ChunkSize int
	Logger    *slog.Logger
}

// New builds a Tap around obs.
func New(obs *observer.Observer, opts Options) (*Tap, error) {
	if obs == nil {
		return nil, errors.New("observer is required")
	}
	size := opts.ChunkSize
	if size == 0 {
		size = defaultChunkSize
	}
	if size < 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	return &Tap{
		obs:       obs,
		chunkSize: size,
		logger:    logging.NewComponentLogger(opts.Logger, "pipeline"),
	}, nil
}

// Run streams r to w. Each chunk read becomes one buffer observation with
// a timestamp relative to stream start; the chunk's bytes are then written
// to w untouched. A nil writer discards the pass-through copy (observe
// only). Cancellation is honored between buffers; a buffer already read is
// always observed and forwarded before Run returns.
func (t *Tap) Run(ctx context.Context, source string, r io.Reader, w io.Writer) (Summary, error) {
	if r == nil {
		return Summary{}, faults.Wrap(faults.ErrValidation, "pipeline", "run", "reader is required", nil)
	}
	if w == nil {
		w = io.Discard
	}

	start := time.Now()
	summary := Summary{Source: source}

	alg := t.obs.Algorithm()
	stream, err := digest.New(alg)
	if err != nil {
		return Summary{}, err
	}

	chunk := make([]byte, t.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, err
		}

		n, readErr := r.Read(chunk)
		if n > 0 {
			summary.Buffers++
			summary.Bytes += uint64(n)

			buf := &observer.Buffer{
				Data:      chunk[:n],
				Timestamp: observer.At(time.Since(start)),
				Sequence:  summary.Buffers,
				Source:    source,
			}
			if _, err := t.obs.Observe(buf); err != nil {
				summary.Elapsed = time.Since(start)
				return summary, err
			}
			stream.Write(chunk[:n])

			if _, err := w.Write(chunk[:n]); err != nil {
				summary.Elapsed = time.Since(start)
				return summary, fmt.Errorf("forward buffer downstream: %w", err)
			}
		}
		if readErr != nil {
			summary.Elapsed = time.Since(start)
			summary.StreamDigest = digest.FromHash(alg, stream)
			if errors.Is(readErr, io.EOF) {
				t.logStreamDone(summary)
				return summary, nil
			}
			return summary, fmt.Errorf("read %s: %w", sourceLabel(source), readErr)
		}
	}
}

func (t *Tap) logStreamDone(summary Summary) {
	t.logger.Debug("stream complete",
		logging.String(logging.FieldSource, summary.Source),
		logging.Uint64("buffers", summary.Buffers),
		logging.Uint64(logging.FieldBytes, summary.Bytes),
		logging.String(logging.FieldDigest, summary.StreamDigest.Hex()),
		logging.Duration("elapsed", summary.Elapsed),
	)
}

func sourceLabel(source string) string {
	if source == "" || source == "-" {
		return "stdin"
	}
	return source
}
