// Package webhook POSTs the finished run report to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidemill/logtriage/internal/model"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
)

// Option configures a webhook Writer.
type Option func(*Writer)

// WithHeaders sets custom HTTP headers sent with the POST.
func WithHeaders(h map[string]string) Option {
	return func(w *Writer) { w.headers = h }
}

// WithTimeout sets the HTTP client timeout. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return func(w *Writer) { w.client.Timeout = d }
}

// Writer POSTs the run report as a JSON body. 5xx responses are retried
// with exponential backoff; 4xx responses fail immediately.
type Writer struct {
	client  *http.Client
	url     string
	headers map[string]string
}

// New creates a webhook writer targeting the given URL.
func New(url string, opts ...Option) *Writer {
	w := &Writer{
		client: &http.Client{Timeout: defaultTimeout},
		url:    url,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// payload is the JSON body delivered to the endpoint: the statistics
// snapshot plus run identity, without the per-record detail.
type payload struct {
	RunID        string      `json:"run_id"`
	Stats        model.Stats `json:"stats"`
	PeakMemoryMB int64       `json:"peak_memory_mb"`
}

// Write serializes the report summary and delivers it, retrying on
// server errors.
func (w *Writer) Write(ctx context.Context, report *model.RunReport) error {
	body, err := json.Marshal(payload{
		RunID:        report.RunID,
		Stats:        report.Stats,
		PeakMemoryMB: report.PeakMemoryMB,
	})
	if err != nil {
		return fmt.Errorf("webhook output: marshal: %w", err)
	}

	backoff := 500 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("webhook output: %w", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		lastErr = w.post(ctx, body)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("webhook output: giving up after %d attempts: %w", maxRetries, lastErr)
}

// Close is a no-op; the report is delivered synchronously in Write.
func (w *Writer) Close() error {
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("webhook output: unexpected status %d", e.code)
}

func retryable(err error) bool {
	se, ok := err.(*statusError)
	return !ok || se.code >= 500
}

func (w *Writer) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook output: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook output: post: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}
	return nil
}
