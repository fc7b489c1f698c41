// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil fetches published source tables over HTTP.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/growth-tables/internal/fsutil"
)

// RetryBaseDelay is the first backoff delay; it doubles on each retry.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 5

// retryable reports whether a status is worth retrying.
func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

// DoWithRetry executes req and retries on 429 and 503 with exponential
// backoff starting at RetryBaseDelay. When maxRetries is 0 the default (5)
// is used. After the last retry the final response is returned as-is so the
// caller can inspect it. Cancelling ctx during a wait returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	delay := RetryBaseDelay
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// Download fetches url into dest, creating parent directories. dest is only
// replaced after the whole body has been received.
func Download(ctx context.Context, client *http.Client, url, dest string, maxRetries int) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, */*")

	resp, err := DoWithRetry(ctx, client, req, maxRetries)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var n int64
	err = fsutil.WriteAtomic(dest, func(w io.Writer) error {
		var copyErr error
		n, copyErr = io.Copy(w, resp.Body)
		if copyErr != nil {
			return fmt.Errorf("writing download: %w", copyErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
