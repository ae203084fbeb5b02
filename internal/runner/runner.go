// Package runner distributes a batch of records across a fixed pool of
// workers using dynamic chunked scheduling.
package runner

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/tidemill/logtriage/internal/engine"
	"github.com/tidemill/logtriage/internal/model"
)

const (
	defaultChunkSize     = 10
	defaultProgressEvery = 100
)

// Option configures a Runner.
type Option func(*Runner)

// WithChunkSize sets how many records a worker claims per dispatch.
// Small chunks balance variable per-record cost. Default: 10.
func WithChunkSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.chunkSize = n
		}
	}
}

// WithProgressEvery sets the progress cadence: a notification fires for
// every record whose original index is a positive multiple of n.
// 0 disables progress. Default: 100.
func WithProgressEvery(n int) Option {
	return func(r *Runner) { r.progressEvery = n }
}

// WithProgressFunc replaces the default slog progress notification.
// Calls are serialized; f never runs concurrently with itself.
func WithProgressFunc(f func(done, total int)) Option {
	return func(r *Runner) { r.progress = f }
}

// Runner processes every record of a batch exactly once, each by exactly
// one worker, writing outputs in place. Per-record outputs depend only on
// the record itself and the shared read-only rule table, so results are
// identical for any worker count or scheduling order.
type Runner struct {
	engine        *engine.Engine
	workers       int
	chunkSize     int
	progressEvery int
	progress      func(done, total int)

	progressMu sync.Mutex
}

// New creates a Runner with the given worker count. A count ≤0 falls
// back to runtime.NumCPU().
func New(eng *engine.Engine, workers int, opts ...Option) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	r := &Runner{
		engine:        eng,
		workers:       workers,
		chunkSize:     defaultChunkSize,
		progressEvery: defaultProgressEvery,
	}
	r.progress = func(done, total int) {
		slog.Info("progress", "processed", done, "total", total)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Workers returns the configured worker count.
func (r *Runner) Workers() int {
	return r.workers
}

// Run processes the whole batch and returns the number of records whose
// processing failed (those are left with default outputs). It blocks
// until every record has been handled.
func (r *Runner) Run(batch []model.Record) int {
	if len(batch) == 0 {
		return 0
	}

	var cursor atomic.Int64 // next unclaimed index
	var failed atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				start := int(cursor.Add(int64(r.chunkSize))) - r.chunkSize
				if start >= len(batch) {
					return
				}
				end := start + r.chunkSize
				if end > len(batch) {
					end = len(batch)
				}
				for i := start; i < end; i++ {
					if err := r.engine.Process(&batch[i]); err != nil {
						failed.Add(1)
						slog.Warn("record processing failed", "line_id", batch[i].LineID, "error", err)
					}
					r.maybeReportProgress(i, len(batch))
				}
			}
		}()
	}
	wg.Wait()

	return int(failed.Load())
}

// maybeReportProgress fires the progress notification for index i if it
// sits on the cadence. The mutex only keeps notifications from
// interleaving; computed results never depend on it.
func (r *Runner) maybeReportProgress(i, total int) {
	if r.progressEvery <= 0 || i == 0 || i%r.progressEvery != 0 {
		return
	}
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.progress(i, total)
}
