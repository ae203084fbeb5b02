// Package stdout renders the human-readable run summary.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/tidemill/logtriage/internal/model"
)

// Writer prints the run summary to a stream (stdout by default).
type Writer struct {
	w io.Writer
}

// New creates a Writer printing to os.Stdout.
func New() *Writer {
	return &Writer{w: os.Stdout}
}

// NewTo creates a Writer printing to the given stream. Used in tests.
func NewTo(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write renders the summary sections: throughput, stage breakdown,
// accuracy, keyword statistics, memory, and label distribution.
func (o *Writer) Write(_ context.Context, report *model.RunReport) error {
	s := report.Stats
	rule := strings.Repeat("=", 80)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nPERFORMANCE ANALYSIS SUMMARY\n%s\n", rule, rule)

	fmt.Fprintf(&b, "\n--- Overall Throughput ---\n")
	fmt.Fprintf(&b, "Total logs: %d\n", s.TotalLogs)
	fmt.Fprintf(&b, "Workers: %d\n", s.NumWorkers)
	fmt.Fprintf(&b, "Total time: %.3f seconds\n", s.TotalTimeSec)
	fmt.Fprintf(&b, "Throughput: %.2f logs/sec\n", s.LogsPerSecond)
	fmt.Fprintf(&b, "Avg time per log: %.3f ms\n", s.AvgTimePerLogMs)

	fmt.Fprintf(&b, "\n--- Stage Breakdown ---\n")
	fmt.Fprintf(&b, "Stage 1: %.3fs (%.1f%%)\n", s.Stage1TimeSec, s.Stage1Percentage)
	fmt.Fprintf(&b, "Stage 2: %.3fs (%.1f%%)\n", s.Stage2TimeSec, s.Stage2Percentage)

	fmt.Fprintf(&b, "\n--- Prediction Accuracy ---\n")
	fmt.Fprintf(&b, "Correct: %d/%d\n", s.Correct, s.TotalLogs)
	fmt.Fprintf(&b, "Accuracy: %.1f%%\n", s.AccuracyPercentage)

	fmt.Fprintf(&b, "\n--- Keywords Statistics ---\n")
	fmt.Fprintf(&b, "Avg keywords per log: %.1f\n", s.AvgKeywordsCount)
	fmt.Fprintf(&b, "Avg chars per log: %.1f\n", s.AvgKeywordsChars)

	fmt.Fprintf(&b, "\n--- Memory Usage ---\n")
	fmt.Fprintf(&b, "Peak memory: %d MB\n", report.PeakMemoryMB)

	writeDistribution(&b, "Ground Truth", report.Distribution.GroundTruth)
	writeDistribution(&b, "Predicted", report.Distribution.Predicted)

	fmt.Fprintf(&b, "%s\n", rule)

	if _, err := io.WriteString(o.w, b.String()); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

// Close is a no-op.
func (o *Writer) Close() error {
	return nil
}

func writeDistribution(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n--- Label Distribution: %s ---\n", title)

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		name := label
		if name == "" || name == model.NormalLabel {
			name = "Normal (-)"
		}
		fmt.Fprintf(b, "  %s: %d\n", name, counts[label])
	}
}
