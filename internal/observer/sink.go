package observer

import (
	"log/slog"
	"sync"

	"md5tap/internal/logging"
)

// LogSink reports observations through a structured logger using the
// classic two-line shape: first the buffer size, then the hex digest.
// A mutex keeps the pair contiguous when observers run concurrently.
type LogSink struct {
	mu     sync.Mutex
	logger *slog.Logger
}

// NewLogSink wraps logger in a sink. A nil logger is replaced with a no-op.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LogSink{logger: logger}
}

// Report logs the observation's size and digest.
func (s *LogSink) Report(obs Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attrs := obsAttrs(obs)
	s.logger.Info("received buffer", logging.Args(append(attrs, logging.Uint64(logging.FieldBytes, obs.Size))...)...)
	s.logger.Info("buffer digest", logging.Args(append(attrs, logging.String(logging.FieldDigest, obs.Digest.Hex()))...)...)
}

// Notice logs the fixed verbose notice ahead of the observation report.
func (s *LogSink) Notice(obs Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info(Notice, logging.Args(obsAttrs(obs)...)...)
}

func obsAttrs(obs Observation) []logging.Attr {
	attrs := make([]logging.Attr, 0, 3)
	if obs.Source != "" {
		attrs = append(attrs, logging.String(logging.FieldSource, obs.Source))
	}
	if obs.Sequence > 0 {
		attrs = append(attrs, logging.Uint64(logging.FieldSequence, obs.Sequence))
	}
	if obs.Timestamp.Valid {
		attrs = append(attrs, logging.Duration(logging.FieldTimestamp, obs.Timestamp.Value))
	}
	return attrs
}

// FanoutSink delivers every observation to each wrapped sink in order.
type FanoutSink struct {
	sinks []Sink
}

// NewFanoutSink combines sinks; nils are skipped.
func NewFanoutSink(sinks ...Sink) *FanoutSink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &FanoutSink{sinks: filtered}
}

func (f *FanoutSink) Report(obs Observation) {
	for _, s := range f.sinks {
		s.Report(obs)
	}
}

// Notice forwards the verbose notice to every wrapped sink that accepts it.
func (f *FanoutSink) Notice(obs Observation) {
	for _, s := range f.sinks {
		if n, ok := s.(NoticeSink); ok {
			n.Notice(obs)
		}
	}
}
