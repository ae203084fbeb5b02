// Package jsonfile writes the performance report as a JSON document.
// The field names are fixed contracts consumed by downstream tooling.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidemill/logtriage/internal/model"
)

// Writer persists the run statistics to a JSON file.
type Writer struct {
	path string
}

// New creates a Writer targeting the given file path.
func New(path string) *Writer {
	return &Writer{path: path}
}

type metadata struct {
	RunID         string  `json:"run_id"`
	TotalLogs     int     `json:"total_logs_processed"`
	NumThreads    int     `json:"num_threads"`
	TotalTimeSecs float64 `json:"total_time_seconds"`
}

type throughput struct {
	LogsPerSecond   float64 `json:"logs_per_second"`
	AvgTimePerLogMs float64 `json:"avg_time_per_log_ms"`
}

type stageBreakdown struct {
	Stage1TimeSec    float64 `json:"stage1_time_sec"`
	Stage2TimeSec    float64 `json:"stage2_time_sec"`
	Stage1Percentage float64 `json:"stage1_percentage"`
	Stage2Percentage float64 `json:"stage2_percentage"`
}

type accuracy struct {
	Correct            int     `json:"correct"`
	Total              int     `json:"total"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

type keywordStats struct {
	AvgKeywordsCount float64 `json:"avg_keywords_count"`
	AvgKeywordsChars float64 `json:"avg_keywords_chars"`
}

type memoryUsage struct {
	PeakMemoryMB int64 `json:"peak_memory_mb"`
}

type document struct {
	Metadata       metadata       `json:"metadata"`
	Throughput     throughput     `json:"throughput"`
	StageBreakdown stageBreakdown `json:"stage_breakdown"`
	Accuracy       accuracy       `json:"accuracy"`
	Keywords       keywordStats   `json:"keywords_statistics"`
	Memory         memoryUsage    `json:"memory_usage"`
}

// Write marshals the report statistics and writes them to the target
// file, replacing any previous contents.
func (w *Writer) Write(_ context.Context, report *model.RunReport) error {
	s := report.Stats
	doc := document{
		Metadata: metadata{
			RunID:         report.RunID,
			TotalLogs:     s.TotalLogs,
			NumThreads:    s.NumWorkers,
			TotalTimeSecs: s.TotalTimeSec,
		},
		Throughput: throughput{
			LogsPerSecond:   s.LogsPerSecond,
			AvgTimePerLogMs: s.AvgTimePerLogMs,
		},
		StageBreakdown: stageBreakdown{
			Stage1TimeSec:    s.Stage1TimeSec,
			Stage2TimeSec:    s.Stage2TimeSec,
			Stage1Percentage: s.Stage1Percentage,
			Stage2Percentage: s.Stage2Percentage,
		},
		Accuracy: accuracy{
			Correct:            s.Correct,
			Total:              s.TotalLogs,
			AccuracyPercentage: s.AccuracyPercentage,
		},
		Keywords: keywordStats{
			AvgKeywordsCount: s.AvgKeywordsCount,
			AvgKeywordsChars: s.AvgKeywordsChars,
		},
		Memory: memoryUsage{PeakMemoryMB: report.PeakMemoryMB},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile output: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("jsonfile output: write %s: %w", w.path, err)
	}
	return nil
}

// Close is a no-op; the file is written and closed in Write.
func (w *Writer) Close() error {
	return nil
}
