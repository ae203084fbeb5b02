// Package csvfile writes per-record classification results as CSV.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tidemill/logtriage/internal/model"
)

var header = []string{
	"LineId", "GroundTruth", "PredictedLabel", "Confidence", "Severity",
	"Stage1TimeMs", "Stage2TimeMs", "TotalTimeMs", "KeywordsCount",
}

// Writer persists the detailed per-record results to a CSV file.
type Writer struct {
	path string
}

// New creates a Writer targeting the given file path.
func New(path string) *Writer {
	return &Writer{path: path}
}

// Write emits one row per record, replacing any previous contents.
func (w *Writer) Write(_ context.Context, report *model.RunReport) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("csvfile output: create %s: %w", w.path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("csvfile output: header: %w", err)
	}
	for i := range report.Records {
		rec := &report.Records[i]
		row := []string{
			strconv.Itoa(rec.LineID),
			rec.Label,
			rec.PredictedLabel,
			rec.Confidence,
			rec.Severity,
			formatMs(rec.Stage1),
			formatMs(rec.Stage2),
			formatMs(rec.Total),
			strconv.Itoa(len(rec.Keywords)),
		}
		if err := cw.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("csvfile output: row %d: %w", rec.LineID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csvfile output: flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csvfile output: close: %w", err)
	}
	return nil
}

// Close is a no-op; the file is written and closed in Write.
func (w *Writer) Close() error {
	return nil
}

func formatMs(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Nanoseconds())/1e6, 'f', 3, 64)
}
