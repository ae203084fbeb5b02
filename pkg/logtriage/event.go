package logtriage

// Event is the classification outcome for one log line.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
type Event struct {
	PredictedLabel string   `json:"predicted_label"`    // Network, Resource, ... or "-" for normal
	Confidence     string   `json:"confidence"`         // low, medium, high
	Severity       string   `json:"severity"`           // INFO, WARNING, ERROR, CRITICAL
	IssueCategory  string   `json:"issue_category"`     // Configuration, Performance, Connectivity, General
	Keywords       []string `json:"keywords,omitempty"` // sorted, deduplicated, capped at 10
	Summary        string   `json:"summary,omitempty"`  // one-line report
}

// Normal is the predicted-label value meaning "no fault detected".
const Normal = "-"
