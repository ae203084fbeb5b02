package engine

import (
	"testing"

	"github.com/tidemill/logtriage/internal/engine/classifier"
	"github.com/tidemill/logtriage/internal/engine/reporter"
	"github.com/tidemill/logtriage/internal/engine/rules"
	"github.com/tidemill/logtriage/internal/model"
)

func newTestEngine() *Engine {
	return New(classifier.New(rules.Default()), reporter.New())
}

func TestProcessPopulatesOutputs(t *testing.T) {
	rec := model.Record{
		LineID:    7,
		Label:     "Network",
		Component: "kernel",
		Level:     "ERROR",
		Content:   "Connection timeout: socket refused",
	}

	if err := newTestEngine().Process(&rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.PredictedLabel != "Network" {
		t.Fatalf("expected Network, got %q", rec.PredictedLabel)
	}
	if rec.Confidence == "" {
		t.Fatal("confidence not set")
	}
	if rec.AffectedComponent != "kernel" {
		t.Fatalf("expected component carried over, got %q", rec.AffectedComponent)
	}
	if rec.Summary == "" {
		t.Fatal("summary not rendered")
	}
	if rec.Stage1 < 0 || rec.Stage2 < 0 {
		t.Fatalf("negative stage durations: %v, %v", rec.Stage1, rec.Stage2)
	}
	if rec.Total != rec.Stage1+rec.Stage2 {
		t.Fatalf("total %v != stage1 %v + stage2 %v", rec.Total, rec.Stage1, rec.Stage2)
	}
}

func TestProcessEmptyContent(t *testing.T) {
	rec := model.Record{LineID: 1, Level: "INFO"}

	if err := newTestEngine().Process(&rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PredictedLabel != model.NormalLabel {
		t.Fatalf("expected normal sentinel, got %q", rec.PredictedLabel)
	}
	if rec.Confidence != "high" {
		t.Fatalf("expected high confidence, got %q", rec.Confidence)
	}
}

func TestProcessRecoversPanic(t *testing.T) {
	// A nil classifier makes stage 1 panic; Process must recover, reset
	// the record, and report the failure as an error.
	eng := New(nil, reporter.New())
	rec := model.Record{LineID: 3, Content: "anything", Level: "ERROR"}

	err := eng.Process(&rec)
	if err == nil {
		t.Fatal("expected error from panicking stage")
	}
	if rec.PredictedLabel != "" || rec.Confidence != "" || rec.Summary != "" {
		t.Fatalf("expected outputs reset, got %+v", rec)
	}
	if rec.Stage1 != 0 || rec.Stage2 != 0 || rec.Total != 0 {
		t.Fatalf("expected timings reset, got %+v", rec)
	}
}
