package faults_test

import (
	"errors"
	"io"
	"testing"

	"md5tap/internal/faults"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := faults.Wrap(faults.ErrTransient, "pipeline", "run", "short read", cause)

	if !errors.Is(err, faults.ErrTransient) {
		t.Fatalf("wrapped error lost its marker: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error lost its cause: %v", err)
	}

	want := "transient failure: pipeline: run: short read: unexpected EOF"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(faults.ErrValidation, "observer", "", "buffer is required", nil)

	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("wrapped error lost its marker: %v", err)
	}
	if got, want := err.Error(), "validation error: observer: buffer is required"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := faults.Wrap(nil, "store", "open", "database locked", nil)
	if !errors.Is(err, faults.ErrTransient) {
		t.Fatalf("nil marker should default to transient: %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := faults.Wrap(faults.ErrNotFound, "", "", "", nil)
	if got, want := err.Error(), "not found: component failure"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"validation", faults.Wrap(faults.ErrValidation, "c", "o", "m", nil), false},
		{"configuration", faults.Wrap(faults.ErrConfiguration, "c", "o", "m", nil), false},
		{"not found", faults.Wrap(faults.ErrNotFound, "c", "o", "m", nil), false},
		{"transient", faults.Wrap(faults.ErrTransient, "c", "o", "m", nil), true},
		{"unclassified", errors.New("disk exploded"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := faults.Retryable(tc.err); got != tc.want {
				t.Fatalf("Retryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
