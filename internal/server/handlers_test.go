// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/docstore"
	"github.com/pdiddy/bibgen/internal/notify"
	"github.com/pdiddy/bibgen/internal/search"
	"github.com/pdiddy/bibgen/pkg/types"
)

// fakeGenerator records the request and returns a canned result.
type fakeGenerator struct {
	lastReq bibliography.Request
	res     bibliography.Result
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, req bibliography.Request) (bibliography.Result, error) {
	f.lastReq = req
	return f.res, f.err
}

// fakeDocs is an in-memory DocumentSource.
type fakeDocs map[string]string

func (f fakeDocs) Get(filename string) (string, error) {
	if content, ok := f[filename]; ok {
		return content, nil
	}
	return "", docstore.ErrNotFound
}

func newTestServer(gen Generator, docs DocumentSource, presets []search.Preset) *httptest.Server {
	s := New(Config{
		Server:    types.ServerConfig{Port: 0},
		Generator: gen,
		Registry:  notify.NewRegistry(),
		Documents: docs,
		Presets:   presets,
	})
	return httptest.NewServer(s.Router)
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestGenerateEndpointSuccess(t *testing.T) {
	gen := &fakeGenerator{res: bibliography.Result{
		Filename: "My_Survey.json",
		JSON:     `{"title":"My_Survey","papers":[]}`,
	}}
	ts := newTestServer(gen, fakeDocs{}, nil)
	defer ts.Close()

	body, contentType := multipartForm(t, map[string]string{
		"queries":      "nerf, slam",
		"total_papers": "25",
		"title":        "My Survey",
	})

	resp, err := http.Post(ts.URL+"/generate_json?sid=sid-42", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, `{"title":"My_Survey","papers":[]}`, out["json_data"])
	assert.Empty(t, out["error"])

	assert.Equal(t, "sid-42", gen.lastReq.SessionID)
	assert.Equal(t, []string{"nerf", " slam"}, gen.lastReq.Queries)
	assert.Equal(t, 25, gen.lastReq.Total)
	assert.Equal(t, "My Survey", gen.lastReq.Title)
}

func TestGenerateEndpointInvalidRequest(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: at least one query is required", bibliography.ErrInvalidRequest)}
	ts := newTestServer(gen, fakeDocs{}, nil)
	defer ts.Close()

	body, contentType := multipartForm(t, map[string]string{
		"queries":      "",
		"total_papers": "10",
		"title":        "T",
	})

	resp, err := http.Post(ts.URL+"/generate_json?sid=s", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["error"])
}

func TestGenerateEndpointBadTotal(t *testing.T) {
	gen := &fakeGenerator{}
	ts := newTestServer(gen, fakeDocs{}, nil)
	defer ts.Close()

	body, contentType := multipartForm(t, map[string]string{
		"queries":      "q",
		"total_papers": "lots",
		"title":        "T",
	})

	resp, err := http.Post(ts.URL+"/generate_json?sid=s", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateEndpointJobFailure(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("aggregating papers: no results obtained from any query")}
	ts := newTestServer(gen, fakeDocs{}, nil)
	defer ts.Close()

	body, contentType := multipartForm(t, map[string]string{
		"queries":      "hopeless",
		"total_papers": "5",
		"title":        "T",
	})

	resp, err := http.Post(ts.URL+"/generate_json?sid=s", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "failed to generate JSON", out["error"])
}

func TestDownloadEndpoint(t *testing.T) {
	docs := fakeDocs{"NeRF_SLAM.json": `{"title":"NeRF_SLAM"}`}
	ts := newTestServer(&fakeGenerator{}, docs, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/download_json?filename=NeRF_SLAM.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment;filename=NeRF_SLAM.json", resp.Header.Get("Content-Disposition"))
}

func TestDownloadEndpointMissing(t *testing.T) {
	ts := newTestServer(&fakeGenerator{}, fakeDocs{}, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/download_json?filename=absent.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadEndpointRejectsTraversal(t *testing.T) {
	ts := newTestServer(&fakeGenerator{}, fakeDocs{}, nil)
	defer ts.Close()

	for _, name := range []string{
		"..%2F..%2Fetc%2Fpasswd.json",
		"dir%2Ffile.json",
		"..json",
		"",
		"plain.txt",
	} {
		resp, err := http.Get(ts.URL + "/download_json?filename=" + name)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "filename %q", name)
	}
}

func TestPresetsEndpoint(t *testing.T) {
	presets := []search.Preset{{
		Name:        "slam",
		Title:       "NeRF SLAM",
		Queries:     []string{"nerf", "slam"},
		TotalPapers: 50,
	}}
	ts := newTestServer(&fakeGenerator{}, fakeDocs{}, presets)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/presets")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out []search.Preset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "NeRF SLAM", out[0].Title)
}

func TestIndexServesForm(t *testing.T) {
	ts := newTestServer(&fakeGenerator{}, fakeDocs{}, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
