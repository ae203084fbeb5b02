package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/tidemill/logtriage/internal/model"
)

// recording is a test writer that captures calls and can fail on demand.
type recording struct {
	writes   int
	closes   int
	writeErr error
	closeErr error
}

func (r *recording) Write(_ context.Context, _ *model.RunReport) error {
	r.writes++
	return r.writeErr
}

func (r *recording) Close() error {
	r.closes++
	return r.closeErr
}

func TestWriteFansOut(t *testing.T) {
	a, b := &recording{}, &recording{}
	m := New(a, b)

	if err := m.Write(context.Background(), &model.RunReport{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.writes != 1 || b.writes != 1 {
		t.Fatalf("expected one write each, got %d and %d", a.writes, b.writes)
	}
}

func TestWriteContinuesPastFailure(t *testing.T) {
	failing := &recording{writeErr: errors.New("boom")}
	ok := &recording{}
	m := New(failing, ok)

	err := m.Write(context.Background(), &model.RunReport{})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if ok.writes != 1 {
		t.Fatal("second writer must still receive the report")
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	a := &recording{closeErr: errors.New("a failed")}
	b := &recording{}
	m := New(a, b)

	err := m.Close()
	if err == nil {
		t.Fatal("expected error")
	}
	if a.closes != 1 || b.closes != 1 {
		t.Fatalf("expected one close each, got %d and %d", a.closes, b.closes)
	}
}
