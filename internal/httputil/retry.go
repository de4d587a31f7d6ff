// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across components.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// OnRetry is invoked before each backoff wait with the attempt number
// (1-based), the retry budget, the offending HTTP status (0 for network
// errors), and the wait duration. Callers use it to surface retry
// decisions as progress lines. A nil OnRetry is allowed.
type OnRetry func(attempt, maxRetries, status int, wait time.Duration)

// DoWithRetry executes an HTTP request and retries on HTTP 429, transient
// server errors (5xx), and network failures with exponential backoff. The
// delay starts at RetryBaseDelay and doubles each attempt.
//
// When maxRetries is 0 the default (3) is used. Retryable response bodies
// are drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last response (or network error) is returned so the caller
// can classify it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, onRetry OnRetry) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))

		status := 0
		if err == nil {
			status = resp.StatusCode
			if !retryableStatus(status) {
				return resp, nil
			}
		}

		// Exhausted retries: hand back whatever happened last.
		if attempt >= maxRetries {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		wait := RetryBaseDelay << attempt
		if onRetry != nil {
			onRetry(attempt+1, maxRetries, status, wait)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// retryableStatus reports whether a response status warrants another
// attempt: rate limits and transient server-side failures.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
