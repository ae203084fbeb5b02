package model

// Stats is the immutable snapshot computed from a finished batch.
// JSON field names are fixed contracts consumed downstream.
type Stats struct {
	TotalLogs       int     `json:"total_logs_processed"`
	NumWorkers      int     `json:"num_threads"`
	TotalTimeSec    float64 `json:"total_time_seconds"`
	LogsPerSecond   float64 `json:"logs_per_second"`
	AvgTimePerLogMs float64 `json:"avg_time_per_log_ms"`

	Stage1TimeSec    float64 `json:"stage1_time_sec"`
	Stage2TimeSec    float64 `json:"stage2_time_sec"`
	Stage1Percentage float64 `json:"stage1_percentage"`
	Stage2Percentage float64 `json:"stage2_percentage"`

	Correct            int     `json:"correct"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`

	AvgKeywordsCount float64 `json:"avg_keywords_count"`
	AvgKeywordsChars float64 `json:"avg_keywords_chars"`
}

// Distribution holds ground-truth and predicted label histograms.
type Distribution struct {
	GroundTruth map[string]int
	Predicted   map[string]int
}

// RunReport bundles everything the writers persist for one batch run.
type RunReport struct {
	RunID        string
	Stats        Stats
	Distribution Distribution
	Records      []Record
	PeakMemoryMB int64 // sourced from OS resource accounting
}
