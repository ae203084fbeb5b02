// Package output defines the destination interface for finished run
// reports.
package output

import (
	"context"

	"github.com/tidemill/logtriage/internal/model"
)

// Writer persists a completed run report. Implementations receive the
// report exactly once per run.
type Writer interface {
	Write(ctx context.Context, report *model.RunReport) error
	Close() error
}
