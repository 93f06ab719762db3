package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"md5tap/internal/logging"
)

func TestNewConsoleWritesHeaderLine(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	logger, err := logging.New(logging.Options{
		Format:           "console",
		Level:            "info",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("buffer digest",
		logging.String(logging.FieldComponent, "tap"),
		logging.String(logging.FieldSource, "input.bin"),
		logging.Uint64(logging.FieldSequence, 7),
		logging.String(logging.FieldDigest, "900150983cd24fb0d6963f7d28e17f72"),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)

	if !strings.Contains(text, "INFO [tap] input.bin #7 buffer digest") {
		t.Fatalf("header line missing, got %q", text)
	}
	if !strings.Contains(text, "    digest: 900150983cd24fb0d6963f7d28e17f72") {
		t.Fatalf("digest field line missing, got %q", text)
	}
}

func TestNewConsoleOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestNewConsoleIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestNewJSONOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("json message", logging.Uint64(logging.FieldBytes, 42))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &record); err != nil {
		t.Fatalf("parse json log line: %v\n%s", err, content)
	}
	if record["msg"] != "json message" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if bytes, ok := record["bytes"].(float64); !ok || bytes != 42 {
		t.Fatalf("bytes = %v", record["bytes"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "chatty",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("suppressed")
	logger.Info("kept")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "suppressed") {
		t.Fatalf("debug record should be filtered at info level: %q", content)
	}
	if !strings.Contains(string(content), "kept") {
		t.Fatalf("info record missing: %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "context.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-42")
	ctx = logging.WithSource(ctx, "input.bin")
	logging.WithContext(ctx, logger).Info("contextual log")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &record); err != nil {
		t.Fatalf("parse json log line: %v\n%s", err, content)
	}
	if record[logging.FieldRunID] != "run-42" {
		t.Fatalf("run id = %v", record[logging.FieldRunID])
	}
	if record[logging.FieldSource] != "input.bin" {
		t.Fatalf("source = %v", record[logging.FieldSource])
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := logging.WithRunID(context.Background(), "run-1")
	ctx = logging.WithSource(ctx, "stream")

	if id, ok := logging.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("run id round trip = %q, %v", id, ok)
	}
	if source, ok := logging.SourceFromContext(ctx); !ok || source != "stream" {
		t.Fatalf("source round trip = %q, %v", source, ok)
	}
	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("empty context should have no run id")
	}
}
