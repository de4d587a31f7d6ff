// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/bibgen/pkg/types"
)

// Emitter receives progress lines produced while a job runs. Delivery is
// the caller's concern; Aggregate never fails because a line was dropped.
type Emitter func(message string)

// Result is the outcome of aggregating one or more queries.
type Result struct {
	// Papers is the deduplicated result set in first-seen order, capped
	// at the requested total.
	Papers []types.Paper

	// ByQuery maps each processed query to the ids of all papers it
	// returned, in fetch order, duplicates included.
	ByQuery map[string][]string

	// Origin maps each paper id in Papers to the query that saw it first.
	Origin map[string]string

	// Failed lists queries skipped after retry exhaustion.
	Failed []string

	// Requests counts API calls made across all queries.
	Requests int
}

// Aggregate runs queries sequentially in request order against src,
// paginating each until the deduplicated running total reaches total or
// the query is exhausted. Queries that fail outright are logged through
// emit and skipped; Aggregate returns an error only when no query yields
// any paper.
//
// pageDelay inserts a pause between consecutive pages of one query; tests
// pass 0.
func Aggregate(ctx context.Context, src Source, queries []string, total int, pageDelay time.Duration, emit Emitter) (Result, error) {
	if emit == nil {
		emit = func(string) {}
	}
	ctx = WithEmitter(ctx, emit)

	res := Result{
		ByQuery: make(map[string][]string),
		Origin:  make(map[string]string),
	}
	seen := make(map[string]bool)

	cleaned := make([]string, 0, len(queries))
	for _, q := range queries {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}

	for qi, query := range cleaned {
		if len(res.Papers) >= total {
			break
		}
		emit(fmt.Sprintf("Processing query (%d/%d): %q", qi+1, len(cleaned), query))

		offset := 0
		for len(res.Papers) < total {
			batch, err := src.Search(ctx, query, offset)
			if err != nil {
				if ctx.Err() != nil {
					return Result{}, ctx.Err()
				}
				emit(fmt.Sprintf("Query %q failed: %v; skipping remaining results for it", query, err))
				res.Failed = append(res.Failed, query)
				break
			}
			res.Requests++

			if len(batch.Papers) == 0 {
				emit(fmt.Sprintf("No more results for %q", query))
				break
			}

			added := 0
			for _, p := range batch.Papers {
				if p.PaperID == "" {
					continue
				}
				res.ByQuery[query] = append(res.ByQuery[query], p.PaperID)
				if seen[p.PaperID] {
					continue
				}
				seen[p.PaperID] = true
				res.Origin[p.PaperID] = query
				res.Papers = append(res.Papers, p)
				added++
				if len(res.Papers) >= total {
					break
				}
			}

			emit(fmt.Sprintf("Fetched %d papers for %q (%d new). Unique total so far: %d. Requests: %d",
				len(batch.Papers), query, added, len(res.Papers), res.Requests))

			if !batch.HasMore || len(res.Papers) >= total {
				break
			}
			offset += len(batch.Papers)

			if pageDelay > 0 {
				select {
				case <-ctx.Done():
					return Result{}, ctx.Err()
				case <-time.After(pageDelay):
				}
			}
		}
	}

	if len(res.Papers) == 0 {
		return Result{}, fmt.Errorf("no results obtained from any query")
	}
	return res, nil
}
