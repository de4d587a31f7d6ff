// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fetches papers from the Semantic Scholar API and
// aggregates multi-query results into a bounded, deduplicated collection.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/bibgen/internal/httputil"
	"github.com/pdiddy/bibgen/pkg/types"
)

// APIBaseURL is the Semantic Scholar paper search endpoint. Declared as a
// var so tests can substitute an httptest server.
var APIBaseURL = "https://api.semanticscholar.org/graph/v1/paper/search"

// searchFields lists the metadata requested per paper, including the
// reference and citation records needed for the document's link graph.
const searchFields = "title,url,paperId,citationCount,publicationDate,authors," +
	"references.title,references.url,references.paperId," +
	"references.citationCount,references.publicationDate,references.authors," +
	"citations.title,citations.url,citations.paperId," +
	"citations.citationCount,citations.publicationDate,citations.authors"

const defaultPageSize = 100

// Batch is one page of search results. HasMore reports whether another
// page is expected; an exhausted query yields an empty batch with HasMore
// false rather than an error.
type Batch struct {
	Papers  []types.Paper
	Total   int
	Offset  int
	HasMore bool
}

// Source abstracts the external paper search API so the aggregator can be
// exercised against fakes.
type Source interface {
	Search(ctx context.Context, query string, offset int) (Batch, error)
}

// Client queries the Semantic Scholar API with offset pagination and
// bounded retries.
type Client struct {
	HTTPClient *http.Client
	Config     types.SearchConfig

	// OnRetry is forwarded to the retry loop so backoff decisions can be
	// surfaced as progress lines. Optional.
	OnRetry httputil.OnRetry
}

// NewClient builds a Client from cfg, applying the config's timeout to a
// fresh http.Client.
func NewClient(cfg types.SearchConfig, onRetry httputil.OnRetry) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Config:     cfg,
		OnRetry:    onRetry,
	}
}

// Search fetches one page of results for query starting at offset.
func (c *Client) Search(ctx context.Context, query string, offset int) (Batch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Batch{}, fmt.Errorf("empty search query")
	}

	pageSize := c.Config.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := url.Values{
		"query":  {query},
		"fields": {searchFields},
		"limit":  {strconv.Itoa(pageSize)},
		"offset": {strconv.Itoa(offset)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, APIBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Batch{}, fmt.Errorf("creating request: %w", err)
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}
	if c.Config.APIKey != "" {
		req.Header.Set("x-api-key", c.Config.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTPClient, req, c.Config.MaxRetries, c.retryReporter(ctx, query))
	if err != nil {
		return Batch{}, fmt.Errorf("paper source request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Batch{}, statusError(resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Batch{}, fmt.Errorf("parsing paper source response: %w", err)
	}

	return Batch{
		Papers:  sr.Data,
		Total:   sr.Total,
		Offset:  sr.Offset,
		HasMore: len(sr.Data) == pageSize,
	}, nil
}

// retryReporter surfaces backoff decisions as progress lines for the job
// that issued this call, falling back to the client's fixed OnRetry hook.
func (c *Client) retryReporter(ctx context.Context, query string) httputil.OnRetry {
	if c.OnRetry != nil {
		return c.OnRetry
	}
	emit := emitterFrom(ctx)
	if emit == nil {
		return nil
	}
	return func(attempt, maxRetries, status int, wait time.Duration) {
		cause := "network error"
		if status != 0 {
			cause = fmt.Sprintf("HTTP %d", status)
		}
		emit(fmt.Sprintf("Attempt %d/%d for %q failed (%s); retrying in %v",
			attempt, maxRetries, query, cause, wait))
	}
}

// searchResponse is the Semantic Scholar search envelope.
type searchResponse struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Data   []types.Paper `json:"data"`
}
