// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/docstore"
	"github.com/pdiddy/bibgen/internal/search"
)

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "form page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleGenerate accepts the multipart form (queries, total_papers,
// title), runs the job synchronously, and returns the document inline.
// Progress streams out-of-band on the session's WebSocket while this
// request is still pending.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sid := r.URL.Query().Get("sid")

	queries := strings.Split(r.FormValue("queries"), ",")
	title := r.FormValue("title")

	total, err := strconv.Atoi(strings.TrimSpace(r.FormValue("total_papers")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "total_papers must be a positive integer")
		return
	}

	req := bibliography.Request{
		SessionID: sid,
		Queries:   queries,
		Total:     total,
		Title:     title,
	}

	// Deliberately not r.Context(): a browser disconnect must not cancel
	// a running job.
	res, err := s.generator.Generate(context.Background(), req)
	if err != nil {
		if errors.Is(err, bibliography.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate JSON")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"json_data": res.JSON})
}

// handleDownload serves a previously generated document as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if !bibliography.SafeFilename(filename) {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	content, err := s.documents.Get(filename)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load document")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment;filename=%s", filename))
	w.Write([]byte(content))
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	presets := s.presets
	if presets == nil {
		presets = []search.Preset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
