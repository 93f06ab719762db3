package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"md5tap/internal/logging"
)

func TestFanoutHandlerDeliversToAll(t *testing.T) {
	var first, second bytes.Buffer
	handler := logging.NewFanoutHandler(
		slog.NewJSONHandler(&first, nil),
		nil,
		slog.NewJSONHandler(&second, nil),
	)

	slog.New(handler).Info("fanned out")

	for i, buf := range []*bytes.Buffer{&first, &second} {
		if !strings.Contains(buf.String(), "fanned out") {
			t.Fatalf("handler %d missed the record: %q", i, buf.String())
		}
	}
}

func TestFanoutHandlerRespectsLevels(t *testing.T) {
	var debugOut, infoOut bytes.Buffer
	handler := logging.NewFanoutHandler(
		slog.NewJSONHandler(&debugOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&infoOut, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	logger := slog.New(handler)

	logger.Debug("only for the debug handler")

	if !strings.Contains(debugOut.String(), "only for the debug handler") {
		t.Fatalf("debug handler missed the record: %q", debugOut.String())
	}
	if infoOut.Len() != 0 {
		t.Fatalf("info handler should filter debug records: %q", infoOut.String())
	}
}

func TestFanoutHandlerEmptyIsNoop(t *testing.T) {
	handler := logging.NewFanoutHandler()
	logger := slog.New(handler)
	logger.Info("goes nowhere")

	if handler.Enabled(nil, slog.LevelError) {
		t.Fatal("empty fanout should report disabled")
	}
}

func TestComponentLogger(t *testing.T) {
	var out bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&out, nil))

	logging.NewComponentLogger(base, "watch").Info("component tagged")

	if !strings.Contains(out.String(), `"component":"watch"`) {
		t.Fatalf("component field missing: %q", out.String())
	}
}
