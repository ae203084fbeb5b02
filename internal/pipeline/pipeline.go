// Package pipeline wires loader, runner, aggregation, and writers into
// the full batch run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tidemill/logtriage/internal/config"
	"github.com/tidemill/logtriage/internal/engine"
	"github.com/tidemill/logtriage/internal/engine/classifier"
	"github.com/tidemill/logtriage/internal/engine/reporter"
	"github.com/tidemill/logtriage/internal/engine/rules"
	"github.com/tidemill/logtriage/internal/loader"
	"github.com/tidemill/logtriage/internal/model"
	"github.com/tidemill/logtriage/internal/output"
	"github.com/tidemill/logtriage/internal/output/csvfile"
	"github.com/tidemill/logtriage/internal/output/jsonfile"
	"github.com/tidemill/logtriage/internal/output/multi"
	"github.com/tidemill/logtriage/internal/output/stdout"
	"github.com/tidemill/logtriage/internal/output/webhook"
	"github.com/tidemill/logtriage/internal/runner"
	"github.com/tidemill/logtriage/internal/stats"
	"github.com/tidemill/logtriage/internal/sysinfo"
)

// ErrNoRecords is returned when the input yields an empty batch; the run
// aborts before any processing or output.
var ErrNoRecords = errors.New("pipeline: no records loaded")

// Output file names written into the configured output directory.
const (
	PerformanceFile = "performance.json"
	ResultsFile     = "results.csv"
)

// Run executes one full batch run: load, classify in parallel,
// aggregate, and persist the report.
func Run(ctx context.Context, cfg config.Config) error {
	batch, skipped, err := loader.LoadCSV(cfg.Input)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if skipped > 0 {
		slog.Warn("skipped malformed input lines", "count", skipped)
	}
	if len(batch) == 0 {
		return ErrNoRecords
	}
	slog.Info("dataset loaded", "records", len(batch), "input", cfg.Input)

	eng := engine.New(classifier.New(rules.Default()), reporter.New())
	run := runner.New(eng, cfg.Workers,
		runner.WithChunkSize(cfg.ChunkSize),
		runner.WithProgressEvery(cfg.ProgressEvery),
	)

	slog.Info("processing", "workers", run.Workers(), "chunk_size", cfg.ChunkSize)
	start := time.Now()
	failed := run.Run(batch)
	wall := time.Since(start)
	if failed > 0 {
		slog.Warn("records left unclassified after processing failures", "count", failed)
	}
	slog.Info("processing completed", "duration", wall)

	snapshot, err := stats.Aggregate(batch, wall.Seconds(), run.Workers())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	report := &model.RunReport{
		RunID:        uuid.NewString(),
		Stats:        snapshot,
		Distribution: stats.Distribution(batch),
		Records:      batch,
		PeakMemoryMB: sysinfo.PeakRSSMB(),
	}

	writers, err := buildWriters(cfg)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	out := multi.New(writers...)
	defer out.Close()

	if err := out.Write(ctx, report); err != nil {
		return fmt.Errorf("pipeline: write report: %w", err)
	}
	slog.Info("report written", "run_id", report.RunID, "output_dir", cfg.OutputDir)
	return nil
}

// buildWriters assembles the output fan-out for the run.
func buildWriters(cfg config.Config) ([]output.Writer, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", cfg.OutputDir, err)
	}

	writers := []output.Writer{
		stdout.New(),
		jsonfile.New(filepath.Join(cfg.OutputDir, PerformanceFile)),
		csvfile.New(filepath.Join(cfg.OutputDir, ResultsFile)),
	}
	if cfg.WebhookURL != "" {
		writers = append(writers, webhook.New(cfg.WebhookURL))
	}
	return writers, nil
}
