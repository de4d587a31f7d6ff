// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"strings"

	"github.com/pdiddy/bibgen/internal/search"
	"github.com/pdiddy/bibgen/pkg/types"
)

// buildDocument assembles the bibliography from an aggregation result.
// Papers holds exactly the deduplicated result set; the link graph and the
// queries_more lists additionally reference each paper's references and
// citations, which may name papers outside the result set.
func buildDocument(title string, agg search.Result) types.Document {
	doc := types.Document{
		Title:       strings.ReplaceAll(title, " ", "_"),
		Papers:      make([]types.PaperEntry, 0, len(agg.Papers)),
		Links:       []types.Link{},
		Queries:     make(map[string][]string, len(agg.ByQuery)),
		QueriesMore: make(map[string][]string, len(agg.ByQuery)),
		Authors:     make(map[string]string),
	}

	moreSeen := make(map[string]map[string]bool, len(agg.ByQuery))
	appendMore := func(query, id string) {
		if moreSeen[query] == nil {
			moreSeen[query] = make(map[string]bool)
		}
		if moreSeen[query][id] {
			return
		}
		moreSeen[query][id] = true
		doc.QueriesMore[query] = append(doc.QueriesMore[query], id)
	}

	for _, p := range agg.Papers {
		doc.Papers = append(doc.Papers, projectPaper(p))
		recordAuthors(doc.Authors, p.Authors)

		origin := agg.Origin[p.PaperID]
		for _, ref := range p.References {
			if ref.PaperID == "" {
				continue
			}
			doc.Links = append(doc.Links, types.Link{Source: p.PaperID, Target: ref.PaperID})
			recordAuthors(doc.Authors, ref.Authors)
			appendMore(origin, ref.PaperID)
		}
		for _, cite := range p.Citations {
			if cite.PaperID == "" {
				continue
			}
			doc.Links = append(doc.Links, types.Link{Source: cite.PaperID, Target: p.PaperID})
			recordAuthors(doc.Authors, cite.Authors)
			appendMore(origin, cite.PaperID)
		}
	}

	for query, ids := range agg.ByQuery {
		doc.Queries[query] = ids
		for _, id := range ids {
			appendMore(query, id)
		}
	}

	return doc
}

// projectPaper reduces a full API record to the document entry shape.
func projectPaper(p types.Paper) types.PaperEntry {
	ids := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.AuthorID != "" {
			ids = append(ids, a.AuthorID)
		}
	}
	return types.PaperEntry{
		PaperID:         p.PaperID,
		Title:           p.Title,
		URL:             p.URL,
		CitationCount:   p.CitationCount,
		PublicationDate: p.PublicationDate,
		AuthorIDs:       ids,
	}
}

func recordAuthors(into map[string]string, authors []types.Author) {
	for _, a := range authors {
		if a.AuthorID != "" {
			into[a.AuthorID] = a.Name
		}
	}
}
