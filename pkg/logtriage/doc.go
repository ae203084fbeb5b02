// Package logtriage provides a rule-based log fault classifier with a
// parallel batch runner.
//
// Quick start:
//
//	t := logtriage.New()
//
//	ev := t.Classify("Connection timeout: socket refused", "ERROR")
//	fmt.Println(ev.PredictedLabel, ev.Confidence) // Network high
//
// The instance is safe for concurrent use: the rule table is read-only
// and classification keeps no per-call state. Create once, reuse.
package logtriage
