// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bibgen service.
package types

// Author is a paper author exactly as the Semantic Scholar API returns it.
type Author struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

// PaperRef is the compact record embedded in a paper's references and
// citations lists. It carries the same metadata as a top-level search hit
// minus the nested reference/citation lists.
type PaperRef struct {
	PaperID         string   `json:"paperId"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	CitationCount   int      `json:"citationCount"`
	PublicationDate string   `json:"publicationDate"`
	Authors         []Author `json:"authors"`
}

// Paper is a Semantic Scholar search record, passed through largely
// unmodified. References and Citations are populated because the search
// request asks for them explicitly.
type Paper struct {
	PaperID         string     `json:"paperId"`
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	CitationCount   int        `json:"citationCount"`
	PublicationDate string     `json:"publicationDate"`
	Authors         []Author   `json:"authors"`
	References      []PaperRef `json:"references,omitempty"`
	Citations       []PaperRef `json:"citations,omitempty"`
}
