// Package classifier implements stage 1: keyword extraction and
// rule-based fault classification.
package classifier

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tidemill/logtriage/internal/engine/rules"
	"github.com/tidemill/logtriage/internal/model"
)

const maxKeywords = 10

// Result holds the outcome of classifying a single log line.
type Result struct {
	PredictedLabel string
	Confidence     string // "low", "medium", "high"
	Severity       string // normalized tier
	IssueCategory  string
	Keywords       []string
}

// Classifier scores extracted keywords against a shared rule table.
// Safe for concurrent use: the table is read-only and Classify keeps
// no per-call state.
type Classifier struct {
	table *rules.Table
}

// New creates a Classifier over the given rule table.
func New(table *rules.Table) *Classifier {
	return &Classifier{table: table}
}

// Classify runs the full stage-1 analysis for one log line. It is total:
// any input, including the empty string, yields a valid Result.
func (c *Classifier) Classify(text, rawSeverity string) Result {
	keywords := ExtractKeywords(text)
	label := c.classify(keywords, rawSeverity)
	return Result{
		PredictedLabel: label,
		Confidence:     c.confidence(keywords, label),
		Severity:       SeverityTier(rawSeverity),
		IssueCategory:  issueCategory(keywords),
		Keywords:       keywords,
	}
}

// ExtractKeywords tokenizes text into the capped keyword list: NFC
// normalization, lowercase, whitespace split, non-alphanumerics stripped
// per token, tokens of length ≤2 dropped, then sorted, deduplicated, and
// truncated to the first 10. The "top 10" is a lexical-order truncation,
// chosen for reproducibility rather than relevance.
func ExtractKeywords(text string) []string {
	fields := strings.Fields(strings.ToLower(norm.NFC.String(text)))

	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if w := b.String(); len(w) > 2 {
			keywords = append(keywords, w)
		}
	}

	sort.Strings(keywords)
	keywords = dedupSorted(keywords)
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// classify scores every category and applies the normal-vs-fault gate.
func (c *Classifier) classify(keywords []string, rawSeverity string) string {
	best := model.NormalLabel
	maxScore := 0

	// Categories() is a fixed alphabetical order; the first strictly
	// greater score wins, so ties resolve to the earliest category.
	for _, cat := range c.table.Categories() {
		score := 0
		for _, kw := range keywords {
			for _, trig := range c.table.Triggers(cat) {
				if symmetricMatch(kw, trig) {
					score++
				}
			}
		}
		if score > maxScore {
			maxScore = score
			best = cat
		}
	}

	// Low-signal INFO lines are treated as normal even when a category
	// scored. A zero best score never assigns a category.
	if maxScore <= 1 && rawSeverity == "INFO" {
		return model.NormalLabel
	}
	return best
}

// confidence derives the tier for the predicted label.
//
// Normal sentinel: "high" unless any keyword contains any trigger from
// any category (one-directional containment), which signals a possibly
// missed fault and downgrades to "low".
//
// Fault label: count keywords that symmetric-match at least one trigger
// of the predicted category; ≥3 → "high", ≥1 → "medium", else "low".
func (c *Classifier) confidence(keywords []string, label string) string {
	if label == model.NormalLabel {
		for _, cat := range c.table.Categories() {
			for _, kw := range keywords {
				for _, trig := range c.table.Triggers(cat) {
					if strings.Contains(kw, trig) {
						return "low"
					}
				}
			}
		}
		return "high"
	}

	matchCount := 0
	for _, kw := range keywords {
		for _, trig := range c.table.Triggers(label) {
			if symmetricMatch(kw, trig) {
				matchCount++
				break
			}
		}
	}
	switch {
	case matchCount >= 3:
		return "high"
	case matchCount >= 1:
		return "medium"
	default:
		return "low"
	}
}

// SeverityTier maps a raw severity string onto the normalized tier.
// Matching is case-sensitive; anything unrecognized is INFO.
func SeverityTier(rawSeverity string) string {
	switch rawSeverity {
	case "CRITICAL", "FATAL":
		return "CRITICAL"
	case "ERROR":
		return "ERROR"
	case "WARN", "WARNING":
		return "WARNING"
	default:
		return "INFO"
	}
}

// issueCategory scans keywords in order; the first one containing a
// marker substring decides the category.
func issueCategory(keywords []string) string {
	for _, kw := range keywords {
		switch {
		case strings.Contains(kw, "config"):
			return "Configuration"
		case strings.Contains(kw, "perform"):
			return "Performance"
		case strings.Contains(kw, "connect"):
			return "Connectivity"
		}
	}
	return "General"
}

// symmetricMatch reports whether either string contains the other.
func symmetricMatch(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// dedupSorted removes adjacent duplicates from a sorted slice in place.
func dedupSorted(s []string) []string {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
