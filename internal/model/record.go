package model

import "time"

// NormalLabel is the sentinel predicted/ground-truth value meaning
// "no fault detected". It matches the label column of the input data.
const NormalLabel = "-"

// Record is one log line together with its classification outputs and
// per-stage timing. The loader populates the input fields; exactly one
// worker populates the output fields during a run.
type Record struct {
	// Input fields, set by the loader.
	LineID    int
	Label     string // ground truth; NormalLabel when the line is not a fault
	Timestamp string
	Date      string
	Node      string
	Time      string
	Component string
	Level     string // raw severity string (INFO, WARN, ERROR, ...)
	Content   string
	Template  string

	// Output fields, set during classification.
	PredictedLabel    string
	Confidence        string // "low", "medium", "high"
	Severity          string // normalized tier: INFO, WARNING, ERROR, CRITICAL
	IssueCategory     string // Configuration, Performance, Connectivity, General
	AffectedComponent string
	Keywords          []string // sorted, deduplicated, ≤10 entries, each >2 chars
	Summary           string   // stage-2 report line

	// Timing, set during classification.
	Stage1 time.Duration
	Stage2 time.Duration
	Total  time.Duration
}

// ResetOutputs clears all output and timing fields, leaving the record
// as the loader produced it. Used when per-record processing fails.
func (r *Record) ResetOutputs() {
	r.PredictedLabel = ""
	r.Confidence = ""
	r.Severity = ""
	r.IssueCategory = ""
	r.AffectedComponent = ""
	r.Keywords = nil
	r.Summary = ""
	r.Stage1 = 0
	r.Stage2 = 0
	r.Total = 0
}
