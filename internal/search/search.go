package search

import (
	"sort"
	"strings"

	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a ranked fuzzy match.
type Result struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkNames implements fuzzy.Source for a bookmark slice.
// An absent name is matched as the empty string.
type bookmarkNames []model.Bookmark

func (bn bookmarkNames) String(i int) string {
	return bn[i].Name
}

func (bn bookmarkNames) Len() int {
	return len(bn)
}

// Filter returns the bookmarks whose name fuzzy-matches query, in their
// original order. An empty (or all-whitespace) query matches everything.
func Filter(bookmarks []model.Bookmark, query string) []model.Bookmark {
	query = strings.TrimSpace(query)
	if query == "" {
		// fuzzy.Find rejects the empty pattern, so pass through explicitly.
		out := make([]model.Bookmark, len(bookmarks))
		copy(out, bookmarks)
		return out
	}

	matches := fuzzy.FindFrom(query, bookmarkNames(bookmarks))

	// Matches come back sorted by score; restore input order.
	indexes := make([]int, len(matches))
	for i, m := range matches {
		indexes[i] = m.Index
	}
	sort.Ints(indexes)

	out := make([]model.Bookmark, len(indexes))
	for i, idx := range indexes {
		out[i] = bookmarks[idx]
	}
	return out
}

// Rank searches bookmark names using fuzzy matching.
// Returns results sorted by match score (best first).
func Rank(bookmarks []model.Bookmark, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, bookmarkNames(bookmarks))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
