// Package preflight provides readiness checks for the filesystem paths and
// history store md5tap depends on.
//
// Watch mode calls RunAll before starting so a doomed run fails fast with a
// readable report instead of erroring file by file.
package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"md5tap/internal/config"
	"md5tap/internal/store"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.Watch.Dir != "" {
		results = append(results, CheckDirectoryAccess("Watch directory", cfg.Watch.Dir))
	}

	if cfg.History.Enabled {
		results = append(results, CheckStore(ctx, cfg))
	}

	return results
}

// Passed reports whether every result succeeded.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStore verifies the observation database can be opened and queried.
func CheckStore(ctx context.Context, cfg *config.Config) Result {
	const name = "Observation store"

	st, err := store.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.StorePath(), err)}
	}
	defer st.Close()

	stats, err := st.CollectStats(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", st.Path(), err)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d runs, %d observations)", st.Path(), stats.Runs, stats.Observations),
	}
}
