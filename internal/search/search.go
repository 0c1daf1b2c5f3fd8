// Package search implements substring search over the resolved content tree.
// It is a pure function of its inputs: the caller supplies an already
// resolved tree and an identity, and matching happens in memory without
// touching the store.
package search

import (
	"strings"

	"github.com/goliatone/go-docs/access"
	"github.com/goliatone/go-docs/structure"
)

// minQueryLength is the threshold below which search returns nothing at all.
// One-character queries match too broadly to be useful.
const minQueryLength = 2

// Match is a single search hit with enough metadata to render a result row
// and navigate to the document.
type Match struct {
	Slug         string `json:"slug"`
	Path         string `json:"path"`
	Title        string `json:"title"`
	SectionTitle string `json:"section_title"`
}

// Search scans every section the identity may view and returns documents
// whose title or body contains the query, case-insensitively. Results keep
// tree order: sections in display order, documents in display order within
// each section. Queries shorter than two characters return nil.
func Search(tree *structure.Tree, id access.Identity, query string) []Match {
	if tree == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(needle)) < minQueryLength {
		return nil
	}

	var matches []Match
	for _, section := range tree.Visible(id) {
		for _, doc := range section.Documents {
			if !contains(doc.Title, needle) && !contains(doc.Content, needle) {
				continue
			}
			matches = append(matches, Match{
				Slug:         doc.Slug,
				Path:         docPath(section, doc),
				Title:        doc.Title,
				SectionTitle: section.Title,
			})
		}
	}
	return matches
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// docPath builds the reader route for a document. Anything above public
// visibility lives under the authenticated prefix.
func docPath(section *structure.Section, doc *structure.Document) string {
	if access.ParseVisibility(string(section.Type)) == access.VisibilityPublic {
		return "/docs/" + doc.Slug
	}
	return "/protected/docs/" + doc.Slug
}
