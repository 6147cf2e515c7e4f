package lastfm

import (
	"context"
	"fmt"
	"strconv"
)

// DefaultPageSize is the number of results per search page unless the
// caller asks otherwise.
const DefaultPageSize = 30

// SearchResult is one match of a search page.
type SearchResult[T any] struct {
	Item     T
	Score    float64
	HasScore bool
}

// Search is one search query. Pages are fetched on demand; nothing is
// cached between calls.
type Search[T any] struct {
	resource
	kind     string // "artist", "album", "track" or "tag"
	terms    Params
	pageSize int
	current  int
	decode   func(Node) (T, error)
}

func newSearch[T any](s Session, kind string, terms Params, pageSize int, decode func(Node) (T, error)) *Search[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Search[T]{
		resource: resource{session: s},
		kind:     kind,
		terms:    terms.Clone(),
		pageSize: pageSize,
		current:  1,
		decode:   decode,
	}
}

// PageSize returns the number of results requested per page.
func (s *Search[T]) PageSize() int { return s.pageSize }

// CurrentPage returns the page most recently fetched, 1 before any fetch.
func (s *Search[T]) CurrentPage() int { return s.current }

// Terms returns a copy of the search terms.
func (s *Search[T]) Terms() Params { return s.terms.Clone() }

func (s *Search[T]) pageParams(page, limit int) Params {
	p := s.terms.Clone()
	p.SetInt("page", page)
	p.SetInt("limit", limit)
	return p
}

// FetchPage requests page n (1-based). A page beyond the last one comes
// back empty from the service.
func (s *Search[T]) FetchPage(ctx context.Context, n int) ([]SearchResult[T], error) {
	if n < 1 {
		return nil, fmt.Errorf("lastfm: page must be at least 1, got %d", n)
	}
	doc, err := s.call(ctx, s.kind+".search", s.pageParams(n, s.pageSize))
	if err != nil {
		return nil, err
	}
	s.current = n

	matches, err := doc.Find(s.kind + "matches")
	if err != nil {
		return nil, err
	}
	items := matches.Children(s.kind)
	results := make([]SearchResult[T], 0, len(items))
	for _, node := range items {
		v, err := s.decode(node)
		if err != nil {
			return nil, err
		}
		r := SearchResult[T]{Item: v}
		if raw, err := node.ChildText("score", 0); err == nil {
			if score, err := strconv.ParseFloat(raw, 64); err == nil {
				r.Score, r.HasScore = score, true
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// TotalResults asks the service how many matches the query has.
func (s *Search[T]) TotalResults(ctx context.Context) (int, error) {
	doc, err := s.call(ctx, s.kind+".search", s.pageParams(1, 1))
	if err != nil {
		return 0, err
	}
	return doc.ExtractInt("totalResults", 0)
}
