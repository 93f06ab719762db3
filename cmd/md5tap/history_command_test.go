package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env, nil, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, stdout, "No observations recorded yet.")

	stdout, _, err = runCLI(t, env, nil, "history", "--runs")
	if err != nil {
		t.Fatalf("history --runs: %v", err)
	}
	requireContains(t, stdout, "No runs recorded yet.")
}

func TestHistoryListsObservations(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, strings.NewReader("abc"), "sum", "--discard"); err != nil {
		t.Fatalf("sum: %v", err)
	}

	stdout, _, err := runCLI(t, env, nil, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, stdout, "900150983cd24fb0d6963f7d28e17f72")
	// go-pretty renders header cells uppercase.
	requireContains(t, stdout, "DIGEST")
}

func TestHistoryJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, strings.NewReader("abc"), "sum", "--discard"); err != nil {
		t.Fatalf("sum: %v", err)
	}

	stdout, _, err := runCLI(t, env, nil, "history", "--json")
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}

	var views []struct {
		RunID    string `json:"run_id"`
		Source   string `json:"source"`
		Sequence uint64 `json:"sequence"`
		Size     uint64 `json:"size"`
		Digest   string `json:"digest"`
	}
	if err := json.Unmarshal([]byte(stdout), &views); err != nil {
		t.Fatalf("parse JSON: %v\n%s", err, stdout)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(views))
	}
	if views[0].Source != "-" || views[0].Size != 3 {
		t.Fatalf("view = %+v", views[0])
	}
	if views[0].Digest != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("digest = %q", views[0].Digest)
	}
}

func TestHistoryForRun(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, strings.NewReader("abc"), "sum", "--discard"); err != nil {
		t.Fatalf("sum: %v", err)
	}

	stdout, _, err := runCLI(t, env, nil, "history", "--runs", "--json")
	if err != nil {
		t.Fatalf("history --runs --json: %v", err)
	}
	var runs []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
		t.Fatalf("parse JSON: %v\n%s", err, stdout)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	stdout, _, err = runCLI(t, env, nil, "history", "--run", runs[0].ID)
	if err != nil {
		t.Fatalf("history --run: %v", err)
	}
	requireContains(t, stdout, "900150983cd24fb0d6963f7d28e17f72")
	requireContains(t, stdout, "OFFSET")
}

func TestHistoryDisabledLeavesNoDatabase(t *testing.T) {
	env := setupCLITestEnv(t)
	appendToConfig(t, env, "\n[history]\nenabled = false\n")

	stdout, _, err := runCLI(t, env, nil, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, stdout, "History is disabled")

	dbPath := filepath.Join(env.dataDir, "observations.db")
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("history command created %s with history disabled", dbPath)
	}
}

func TestHistoryForUnknownRun(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, env, nil, "history", "--run", "nope")
	if err != nil {
		t.Fatalf("history --run: %v", err)
	}
	requireContains(t, stdout, "No observations for run nope.")
}
