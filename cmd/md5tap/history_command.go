package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"md5tap/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool
	var showRuns bool
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded observations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history.enabled = false); nothing recorded.")
				return nil
			}
			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			switch {
			case runID != "":
				return printRunObservations(cmd, st, runID, jsonOut)
			case showRuns:
				return printRuns(cmd, st, limit, jsonOut)
			default:
				return printObservations(cmd, st, limit, jsonOut)
			}
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&showRuns, "runs", false, "Show stream runs instead of individual observations")
	cmd.Flags().StringVar(&runID, "run", "", "Show all observations for one run ID")
	return cmd
}

func printObservations(cmd *cobra.Command, st *store.Store, limit int, jsonOut bool) error {
	records, err := st.RecentObservations(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd, observationViews(records))
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No observations recorded yet.")
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.ObservedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Source,
			strconv.FormatUint(rec.Sequence, 10),
			strconv.FormatUint(rec.Size, 10),
			rec.Digest,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Observed", "Source", "Seq", "Bytes", "Digest"},
		rows, 3, 4,
	))
	return nil
}

func printRunObservations(cmd *cobra.Command, st *store.Store, runID string, jsonOut bool) error {
	records, err := st.ObservationsForRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd, observationViews(records))
	}
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No observations for run %s.\n", runID)
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		offset := ""
		if rec.Timestamp.Valid {
			offset = rec.Timestamp.Value.Round(time.Microsecond).String()
		}
		rows = append(rows, []string{
			strconv.FormatUint(rec.Sequence, 10),
			offset,
			strconv.FormatUint(rec.Size, 10),
			rec.Digest,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Seq", "Offset", "Bytes", "Digest"},
		rows, 1, 2, 3,
	))
	return nil
}

func printRuns(cmd *cobra.Command, st *store.Store, limit int, jsonOut bool) error {
	runs, err := st.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd, runViews(runs))
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		state := "running"
		if run.Finished {
			state = "done"
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.ID,
			run.Source,
			state,
			strconv.FormatUint(run.Buffers, 10),
			strconv.FormatUint(run.Bytes, 10),
			run.StreamDigest,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Started", "Run", "Source", "State", "Buffers", "Bytes", "Stream digest"},
		rows, 5, 6,
	))
	return nil
}

type observationView struct {
	ObservedAt string `json:"observed_at"`
	RunID      string `json:"run_id"`
	Source     string `json:"source"`
	Sequence   uint64 `json:"sequence"`
	Size       uint64 `json:"size"`
	Algorithm  string `json:"algorithm"`
	Digest     string `json:"digest"`
	Offset     string `json:"offset,omitempty"`
}

func observationViews(records []store.ObservationRecord) []observationView {
	views := make([]observationView, 0, len(records))
	for _, rec := range records {
		view := observationView{
			ObservedAt: rec.ObservedAt.UTC().Format(time.RFC3339),
			RunID:      rec.RunID,
			Source:     rec.Source,
			Sequence:   rec.Sequence,
			Size:       rec.Size,
			Algorithm:  rec.Algorithm,
			Digest:     rec.Digest,
		}
		if rec.Timestamp.Valid {
			view.Offset = rec.Timestamp.Value.String()
		}
		views = append(views, view)
	}
	return views
}

type runView struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Algorithm    string `json:"algorithm"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at,omitempty"`
	Buffers      uint64 `json:"buffers"`
	Bytes        uint64 `json:"bytes"`
	StreamDigest string `json:"stream_digest,omitempty"`
}

func runViews(runs []store.Run) []runView {
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		view := runView{
			ID:           run.ID,
			Source:       run.Source,
			Algorithm:    run.Algorithm.String(),
			StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
			Buffers:      run.Buffers,
			Bytes:        run.Bytes,
			StreamDigest: run.StreamDigest,
		}
		if run.Finished {
			view.FinishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
		}
		views = append(views, view)
	}
	return views
}
