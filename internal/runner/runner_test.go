package runner

import (
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/tidemill/logtriage/internal/engine"
	"github.com/tidemill/logtriage/internal/engine/classifier"
	"github.com/tidemill/logtriage/internal/engine/reporter"
	"github.com/tidemill/logtriage/internal/engine/rules"
	"github.com/tidemill/logtriage/internal/model"
)

func newTestEngine() *engine.Engine {
	return engine.New(classifier.New(rules.Default()), reporter.New())
}

func makeBatch(n int) []model.Record {
	contents := []string{
		"Connection timeout: socket refused",
		"memory allocation limit exceeded on node",
		"authentication failed: permission denied",
		"device driver firmware fault detected",
		"instruction cache parity error corrected",
		"generating core dump after fatal signal",
		"routine health check completed",
		"",
	}
	levels := []string{"ERROR", "WARN", "INFO", "FATAL"}

	batch := make([]model.Record, n)
	for i := range batch {
		batch[i] = model.Record{
			LineID:  i + 1,
			Label:   "Network",
			Level:   levels[i%len(levels)],
			Content: contents[i%len(contents)],
		}
	}
	return batch
}

// classification captures only the deterministic outputs (not timings).
type classification struct {
	Label, Confidence, Severity, Category, Summary string
	Keywords                                       []string
}

func snapshot(batch []model.Record) []classification {
	out := make([]classification, len(batch))
	for i := range batch {
		out[i] = classification{
			Label:      batch[i].PredictedLabel,
			Confidence: batch[i].Confidence,
			Severity:   batch[i].Severity,
			Category:   batch[i].IssueCategory,
			Summary:    batch[i].Summary,
			Keywords:   batch[i].Keywords,
		}
	}
	return out
}

func TestRunProcessesEveryRecord(t *testing.T) {
	batch := makeBatch(237)
	failed := New(newTestEngine(), 8, WithProgressEvery(0)).Run(batch)

	if failed != 0 {
		t.Fatalf("expected no failures, got %d", failed)
	}
	for i := range batch {
		// Classified records always have label and confidence set.
		if batch[i].PredictedLabel == "" || batch[i].Confidence == "" {
			t.Fatalf("record %d not processed: %+v", i, batch[i])
		}
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	var baseline []classification
	for _, workers := range []int{1, 4, 32} {
		batch := makeBatch(500)
		New(newTestEngine(), workers, WithProgressEvery(0)).Run(batch)

		got := snapshot(batch)
		if baseline == nil {
			baseline = got
			continue
		}
		if !reflect.DeepEqual(got, baseline) {
			t.Fatalf("outputs differ between worker counts (workers=%d)", workers)
		}
	}
}

func TestRunProgressCadence(t *testing.T) {
	batch := makeBatch(500)

	var indices []int
	run := New(newTestEngine(), 32,
		WithChunkSize(10),
		WithProgressEvery(100),
		WithProgressFunc(func(done, total int) {
			if total != 500 {
				t.Errorf("expected total 500, got %d", total)
			}
			indices = append(indices, done) // serialized by the runner
		}),
	)
	run.Run(batch)

	sort.Ints(indices)
	if !reflect.DeepEqual(indices, []int{100, 200, 300, 400}) {
		t.Fatalf("expected notifications at 100,200,300,400, got %v", indices)
	}
}

func TestRunProgressDisabled(t *testing.T) {
	batch := makeBatch(300)
	called := false
	run := New(newTestEngine(), 4,
		WithProgressEvery(0),
		WithProgressFunc(func(done, total int) { called = true }),
	)
	run.Run(batch)

	if called {
		t.Fatal("expected no progress notifications when disabled")
	}
}

func TestRunEmptyBatch(t *testing.T) {
	if failed := New(newTestEngine(), 4).Run(nil); failed != 0 {
		t.Fatalf("expected 0 failures on empty batch, got %d", failed)
	}
}

func TestRunWorkersDefault(t *testing.T) {
	run := New(newTestEngine(), 0)
	if run.Workers() <= 0 {
		t.Fatalf("expected positive default worker count, got %d", run.Workers())
	}
}

func TestRunChunkSmallerThanBatch(t *testing.T) {
	// Chunk size larger than the batch must still process everything.
	batch := makeBatch(7)
	New(newTestEngine(), 3, WithChunkSize(50), WithProgressEvery(0)).Run(batch)
	for i := range batch {
		if batch[i].PredictedLabel == "" {
			t.Fatalf("record %d not processed", i)
		}
	}
}

func ExampleRunner_Run() {
	batch := []model.Record{
		{LineID: 1, Level: "ERROR", Content: "Connection timeout: socket refused"},
	}
	New(newTestEngine(), 2, WithProgressEvery(0)).Run(batch)
	fmt.Println(batch[0].PredictedLabel)
	// Output: Network
}
