package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"md5tap/internal/preflight"
	"md5tap/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show preflight checks and history volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)

			if jsonOut {
				type checkView struct {
					Name   string `json:"name"`
					Passed bool   `json:"passed"`
					Detail string `json:"detail"`
				}
				views := make([]checkView, 0, len(results))
				for _, r := range results {
					views = append(views, checkView(r))
				}
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				mark := "FAIL"
				if r.Passed {
					mark = "ok"
				}
				rows = append(rows, []string{r.Name, mark, r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "State", "Detail"},
				rows,
			))

			if cfg.History.Enabled {
				st, err := store.Open(cfg)
				if err != nil {
					return err
				}
				defer st.Close()
				stats, err := st.CollectStats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "History: %d runs, %d observations, %d bytes observed\n",
					stats.Runs, stats.Observations, stats.Bytes)
			}

			if !preflight.Passed(results) {
				return fmt.Errorf("one or more preflight checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
