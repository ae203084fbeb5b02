package logtriage

import (
	"github.com/tidemill/logtriage/internal/engine"
	"github.com/tidemill/logtriage/internal/engine/classifier"
	"github.com/tidemill/logtriage/internal/engine/reporter"
	"github.com/tidemill/logtriage/internal/engine/rules"
	"github.com/tidemill/logtriage/internal/model"
	"github.com/tidemill/logtriage/internal/runner"
)

// Line is one raw log line to classify.
type Line struct {
	Text     string // the log text
	Severity string // raw severity string: INFO, WARN, ERROR, ...
}

// Triage is a rule-based log fault classifier.
// Safe for concurrent use.
type Triage struct {
	engine  *engine.Engine
	workers int
}

// Option configures a Triage instance.
type Option func(*Triage)

// WithWorkers sets the worker count used by ClassifyBatch.
// Default: number of CPUs.
func WithWorkers(n int) Option {
	return func(t *Triage) { t.workers = n }
}

// New creates a Triage instance with the built-in rule table.
func New(opts ...Option) *Triage {
	t := &Triage{
		engine: engine.New(classifier.New(rules.Default()), reporter.New()),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Classify classifies a single log line. It is total: any input yields
// a valid Event.
func (t *Triage) Classify(text, severity string) Event {
	rec := model.Record{Content: text, Level: severity}
	// Process only fails on a stage panic; the zero-valued Event left
	// behind is the documented failure outcome.
	_ = t.engine.Process(&rec)
	return toEvent(&rec)
}

// ClassifyBatch classifies all lines across the configured worker pool
// and returns one Event per line, in input order. Results are identical
// for any worker count.
func (t *Triage) ClassifyBatch(lines []Line) []Event {
	batch := make([]model.Record, len(lines))
	for i, l := range lines {
		batch[i] = model.Record{LineID: i, Content: l.Text, Level: l.Severity}
	}

	run := runner.New(t.engine, t.workers, runner.WithProgressEvery(0))
	run.Run(batch)

	events := make([]Event, len(batch))
	for i := range batch {
		events[i] = toEvent(&batch[i])
	}
	return events
}

func toEvent(rec *model.Record) Event {
	return Event{
		PredictedLabel: rec.PredictedLabel,
		Confidence:     rec.Confidence,
		Severity:       rec.Severity,
		IssueCategory:  rec.IssueCategory,
		Keywords:       rec.Keywords,
		Summary:        rec.Summary,
	}
}
