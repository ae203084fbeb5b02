// Package reporter implements stage 2: rendering the per-record report
// line from the classification outputs.
package reporter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidemill/logtriage/internal/model"
)

const maxSummaryRunes = 120

// Reporter renders one-line summaries for classified records.
type Reporter struct{}

// New creates a Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Report renders the summary for a record whose stage-1 outputs are
// already populated. The input fields are read-only here.
func (r *Reporter) Report(rec *model.Record) string {
	label := rec.PredictedLabel
	if label == model.NormalLabel {
		label = "normal"
	}
	return fmt.Sprintf("[%s] %s/%s: %s", rec.Severity, label, rec.IssueCategory, summarize(rec.Content))
}

// summarize takes the first line of the content and cuts it at a word
// boundary within maxSummaryRunes, appending "..." when cut.
func summarize(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if utf8.RuneCountInString(line) <= maxSummaryRunes {
		return line
	}

	runes := []rune(line)
	cut := string(runes[:maxSummaryRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ") + "..."
}
