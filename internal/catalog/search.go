package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/shelf/internal/domain"
)

// SearchBooks ranks loaded books against query by title and author.
// An empty query returns every book in collection order.
func (s *Service) SearchBooks(query string) []domain.Book {
	books := s.books.Get()
	query = strings.TrimSpace(query)
	if query == "" {
		return books
	}

	// One target per book: "title author"
	targets := make([]string, len(books))
	for i, b := range books {
		targets[i] = b.Title + " " + b.Author
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	results := make([]domain.Book, len(ranks))
	for i, r := range ranks {
		results[i] = books[r.OriginalIndex]
	}
	return results
}
