package service

import (
	"context"
	"encoding/json"
	"fmt"
)

// Searcher is the external web search API
type Searcher interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// SearchService proxies study recommendation searches
type SearchService struct {
	searcher Searcher
}

// NewSearchService creates a new search service
func NewSearchService(searcher Searcher) *SearchService {
	return &SearchService{searcher: searcher}
}

// Search returns the raw search API result for query
func (s *SearchService) Search(ctx context.Context, query string) (json.RawMessage, error) {
	result, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch web results: %w", err)
	}
	return result, nil
}
