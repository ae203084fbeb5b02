// Package engine orchestrates the classify → report stages for single
// records, capturing per-stage timing.
package engine

import (
	"fmt"
	"time"

	"github.com/tidemill/logtriage/internal/engine/classifier"
	"github.com/tidemill/logtriage/internal/engine/reporter"
	"github.com/tidemill/logtriage/internal/model"
)

// Engine runs the two analysis stages over one record at a time.
// Safe for concurrent use as long as no two callers pass the same
// record: all shared state is read-only.
type Engine struct {
	classifier *classifier.Classifier
	reporter   *reporter.Reporter
}

// New creates an Engine with the provided components.
func New(cls *classifier.Classifier, rep *reporter.Reporter) *Engine {
	return &Engine{classifier: cls, reporter: rep}
}

// Process classifies the record and renders its report, writing outputs
// and stage durations in place. A panic in either stage is recovered:
// the record's outputs are reset to defaults and an error is returned,
// so one bad record never aborts a batch.
func (e *Engine) Process(rec *model.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			rec.ResetOutputs()
			err = fmt.Errorf("engine: process line %d: %v", rec.LineID, r)
		}
	}()

	// Stage 1: rule-based analysis.
	start := time.Now()
	res := e.classifier.Classify(rec.Content, rec.Level)
	rec.PredictedLabel = res.PredictedLabel
	rec.Confidence = res.Confidence
	rec.Severity = res.Severity
	rec.IssueCategory = res.IssueCategory
	rec.Keywords = res.Keywords
	rec.AffectedComponent = rec.Component
	rec.Stage1 = time.Since(start)

	// Stage 2: report generation.
	start = time.Now()
	rec.Summary = e.reporter.Report(rec)
	rec.Stage2 = time.Since(start)

	rec.Total = rec.Stage1 + rec.Stage2
	return nil
}
