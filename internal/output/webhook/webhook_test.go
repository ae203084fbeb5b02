package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemill/logtriage/internal/model"
)

func sampleReport() *model.RunReport {
	return &model.RunReport{
		RunID:        "run-456",
		Stats:        model.Stats{TotalLogs: 10, NumWorkers: 2},
		PeakMemoryMB: 5,
	}
}

func TestWriteDeliversPayload(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := New(srv.URL)
	require.NoError(t, w.Write(context.Background(), sampleReport()))
	assert.Equal(t, "run-456", got.RunID)
	assert.Equal(t, 10, got.Stats.TotalLogs)
	assert.EqualValues(t, 5, got.PeakMemoryMB)
}

func TestWriteSendsCustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-1", r.Header.Get("X-Api-Key"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	w := New(srv.URL, WithHeaders(map[string]string{"X-Api-Key": "token-1"}))
	require.NoError(t, w.Write(context.Background(), sampleReport()))
}

func TestWriteRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := New(srv.URL, WithTimeout(time.Second))
	require.NoError(t, w.Write(context.Background(), sampleReport()))
	assert.EqualValues(t, 3, calls.Load())
}

func TestWriteDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	w := New(srv.URL)
	require.Error(t, w.Write(context.Background(), sampleReport()))
	assert.EqualValues(t, 1, calls.Load())
}

func TestWriteGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := New(srv.URL)
	require.Error(t, w.Write(context.Background(), sampleReport()))
	assert.EqualValues(t, maxRetries, calls.Load())
}
