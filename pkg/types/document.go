// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperEntry is the projection of a Paper stored in a generated document.
type PaperEntry struct {
	PaperID         string   `json:"paperId"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	CitationCount   int      `json:"citationCount"`
	PublicationDate string   `json:"publicationDate"`
	AuthorIDs       []string `json:"authorIds"`
}

// Link is a directed citation edge between two papers. Source cites Target.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Document is the generated bibliography. Papers holds the deduplicated
// result set in first-seen order. Queries maps each query to the paper ids
// it returned; QueriesMore additionally includes reference and citation
// ids, which may name papers that are not themselves entries in Papers.
type Document struct {
	Title       string              `json:"title"`
	Papers      []PaperEntry        `json:"papers"`
	Links       []Link              `json:"links"`
	Queries     map[string][]string `json:"queries"`
	QueriesMore map[string][]string `json:"queries_more"`
	Authors     map[string]string   `json:"authors"`
}
