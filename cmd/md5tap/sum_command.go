package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"md5tap/internal/digest"
	"md5tap/internal/logging"
	"md5tap/internal/observer"
	"md5tap/internal/pipeline"
	"md5tap/internal/store"
)

type sumOptions struct {
	output    string
	discard   bool
	verbose   bool
	algorithm string
	chunkSize int
	noHistory bool
	jsonOut   bool
}

func newSumCommand(ctx *commandContext) *cobra.Command {
	opts := &sumOptions{}

	cmd := &cobra.Command{
		Use:   "sum [FILE...]",
		Short: "Stream files (or stdin) through the digest tap",
		Long: `Stream each FILE through the digest observer, forwarding the bytes
unchanged to stdout (or --output). Every buffer read produces an
observation with its size and digest; a whole-stream digest is reported
per file. With no FILE, or when FILE is -, stdin is observed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(cmd, ctx, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Forward data to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.discard, "discard", false, "Observe without forwarding the data anywhere")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Log the per-buffer notice line")
	cmd.Flags().StringVar(&opts.algorithm, "algorithm", "", "Digest algorithm (md5 or sha256)")
	cmd.Flags().IntVar(&opts.chunkSize, "chunk-size", 0, "Buffer size in bytes for streaming")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Skip recording observations to the history store")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print stream summaries as JSON (requires --output or --discard)")
	return cmd
}

func runSum(cmd *cobra.Command, cmdCtx *commandContext, opts *sumOptions, args []string) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := cmdCtx.newLogger("")
	if err != nil {
		return err
	}

	algName := opts.algorithm
	if algName == "" {
		algName = cfg.Observer.Algorithm
	}
	alg, err := digest.ParseAlgorithm(algName)
	if err != nil {
		return err
	}

	chunkSize := opts.chunkSize
	if chunkSize == 0 {
		chunkSize = cfg.Observer.ChunkSize
	}

	verbose := cfg.Observer.Verbose || opts.verbose

	// stdout carries the pass-through data unless it was redirected away.
	dest := io.Writer(cmd.OutOrStdout())
	summariesToStdout := false
	switch {
	case opts.discard:
		dest = io.Discard
		summariesToStdout = true
	case opts.output != "":
		file, err := os.OpenFile(opts.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("open output %s: %w", opts.output, err)
		}
		defer file.Close()
		dest = file
		summariesToStdout = true
	}
	if opts.jsonOut && !summariesToStdout {
		return fmt.Errorf("--json needs stdout free; combine it with --output or --discard")
	}

	var history *store.Store
	if cfg.History.Enabled && !opts.noHistory {
		history, err = store.Open(cfg)
		if err != nil {
			return err
		}
		defer history.Close()
		if cfg.History.RetentionDays > 0 {
			cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
			if _, err := history.Prune(cmd.Context(), cutoff); err != nil {
				logger.Warn("history prune failed", logging.Error(err))
			}
		}
	}

	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	var summaries []streamSummary
	for _, source := range sources {
		summary, err := observeStream(cmd, cmdCtx, streamJob{
			source:    source,
			dest:      dest,
			alg:       alg,
			chunkSize: chunkSize,
			verbose:   verbose,
			history:   history,
			logger:    logger,
		})
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
		if summariesToStdout && !opts.jsonOut {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", summary.Digest, summary.Source)
		}
	}

	if opts.jsonOut {
		return writeJSON(cmd, summaries)
	}
	return nil
}

type streamJob struct {
	source    string
	dest      io.Writer
	alg       digest.Algorithm
	chunkSize int
	verbose   bool
	history   *store.Store
	logger    *slog.Logger
}

type streamSummary struct {
	Source  string `json:"source"`
	Buffers uint64 `json:"buffers"`
	Bytes   uint64 `json:"bytes"`
	Digest  string `json:"digest"`
	Elapsed string `json:"elapsed"`
}

func observeStream(cmd *cobra.Command, cmdCtx *commandContext, job streamJob) (streamSummary, error) {
	var reader io.Reader
	label := job.source
	if job.source == "-" || job.source == "" {
		reader = cmd.InOrStdin()
		label = "-"
	} else {
		file, err := os.Open(job.source)
		if err != nil {
			return streamSummary{}, fmt.Errorf("open %s: %w", job.source, err)
		}
		defer file.Close()
		reader = file
	}

	runID := uuid.NewString()
	ctx := logging.WithRunID(cmd.Context(), runID)
	runLogger := logging.WithContext(ctx, job.logger)

	sinks := []observer.Sink{observer.NewLogSink(runLogger)}
	if job.history != nil {
		if err := job.history.StartRun(ctx, runID, label, job.alg); err != nil {
			return streamSummary{}, err
		}
		sinks = append(sinks, job.history.NewSink(runID, job.alg.String(), runLogger))
	}

	obs, err := observer.New(job.alg, observer.NewFanoutSink(sinks...), observer.WithVerbose(job.verbose))
	if err != nil {
		return streamSummary{}, err
	}
	tap, err := pipeline.New(obs, pipeline.Options{ChunkSize: job.chunkSize, Logger: runLogger})
	if err != nil {
		return streamSummary{}, err
	}

	summary, err := tap.Run(ctx, label, reader, job.dest)
	if err != nil {
		return streamSummary{}, err
	}

	if job.history != nil {
		if err := job.history.FinishRun(ctx, runID, summary.Buffers, summary.Bytes, summary.StreamDigest.Hex()); err != nil {
			return streamSummary{}, err
		}
	}

	runLogger.Info("stream observed",
		logging.String(logging.FieldSource, label),
		logging.Uint64("buffers", summary.Buffers),
		logging.Uint64(logging.FieldBytes, summary.Bytes),
		logging.String(logging.FieldDigest, summary.StreamDigest.Hex()),
		logging.Duration("elapsed", summary.Elapsed),
	)

	return streamSummary{
		Source:  label,
		Buffers: summary.Buffers,
		Bytes:   summary.Bytes,
		Digest:  summary.StreamDigest.Hex(),
		Elapsed: summary.Elapsed.Round(time.Millisecond).String(),
	}, nil
}
