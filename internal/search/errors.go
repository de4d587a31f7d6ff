// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors classifying paper-source failures. Callers match them
// with errors.Is.
var (
	// ErrRateLimited reports that the API kept returning HTTP 429 after
	// the retry budget was spent.
	ErrRateLimited = errors.New("rate limited by paper source")

	// ErrNotFound reports an HTTP 404 from the paper source.
	ErrNotFound = errors.New("paper source endpoint not found")
)

// statusError converts a non-200 status left over after retries into the
// matching sentinel, or a plain error for anything unclassified.
func statusError(code int) error {
	switch {
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("paper source returned HTTP %d", code)
	}
}
