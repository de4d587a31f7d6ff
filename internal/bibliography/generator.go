// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibliography orchestrates one generate job: validate the
// request, aggregate papers, assemble the JSON document, and hand it to
// the document store for the later download.
package bibliography

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/bibgen/internal/search"
)

// ErrInvalidRequest marks validation failures. The delivery layer maps it
// to HTTP 400; nothing runs and nothing is stored.
var ErrInvalidRequest = errors.New("invalid request")

// Request is one generate job as submitted by the browser.
type Request struct {
	SessionID string
	Queries   []string
	Total     int
	Title     string
}

// Result references the finished document.
type Result struct {
	Filename string
	JSON     string
	Papers   int
}

// Notifier pushes a progress line to a session's channel. Implementations
// must be fire-and-forget.
type Notifier interface {
	Send(sid, message string)
}

// Store persists a finished document under its filename.
type Store interface {
	Put(filename, content string) error
}

// Generator runs generate jobs. Jobs are independent; concurrent requests
// from one session both run and share whatever push channel the session
// currently has.
type Generator struct {
	Source   search.Source
	Notifier Notifier

	// Store may be nil (CLI use); the document is then only returned.
	Store Store

	// PageDelay is the pause between result pages of one query.
	PageDelay time.Duration
}

// Generate runs one job start to finish and returns the document content
// and its download filename.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	queries := nonBlank(req.Queries)
	if len(queries) == 0 {
		return Result{}, fmt.Errorf("%w: at least one query is required", ErrInvalidRequest)
	}
	if req.Total <= 0 {
		return Result{}, fmt.Errorf("%w: total papers must be a positive integer", ErrInvalidRequest)
	}
	filename, err := FilenameForTitle(req.Title)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	jobID := uuid.NewString()[:8]
	emit := func(msg string) {
		if g.Notifier != nil {
			g.Notifier.Send(req.SessionID, fmt.Sprintf("[%s] %s", req.Title, msg))
		}
	}
	emit(fmt.Sprintf("Job %s started: %d queries, up to %d papers", jobID, len(queries), req.Total))

	agg, err := search.Aggregate(ctx, g.Source, queries, req.Total, g.PageDelay, emit)
	if err != nil {
		emit(fmt.Sprintf("Job %s failed: %v", jobID, err))
		return Result{}, fmt.Errorf("aggregating papers: %w", err)
	}
	emit(fmt.Sprintf("Total unique papers after removing duplicates: %d", len(agg.Papers)))

	doc := buildDocument(req.Title, agg)
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return Result{}, fmt.Errorf("serializing document: %w", err)
	}
	content := string(data)

	if g.Store != nil {
		if err := g.Store.Put(filename, content); err != nil {
			emit(fmt.Sprintf("Job %s failed to store document: %v", jobID, err))
			return Result{}, fmt.Errorf("storing document: %w", err)
		}
	}

	emit(fmt.Sprintf("Job %s done: document ready as %s", jobID, filename))
	return Result{Filename: filename, JSON: content, Papers: len(agg.Papers)}, nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
