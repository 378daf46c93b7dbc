package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks the documents of one collection against a query.
type SearchService struct {
	collection driven.Collection
}

// NewSearchService creates a search service over collection.
func NewSearchService(collection driven.Collection) *SearchService {
	return &SearchService{collection: collection}
}

// Search returns up to opts.Limit documents, best first, with their
// document URLs decoded from metadata. A blank query returns no results.
func (s *SearchService) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	results, err := s.collection.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.collection.Name(), err)
	}

	for i := range results {
		doc := &results[i].Document
		urls, err := doc.InterimOrderURLs()
		if err != nil {
			logger.Warn("document %s: interim order urls: %v", doc.ID, err)
			urls = []string{}
		}
		results[i].InterimOrderURLs = urls
		results[i].JudgementURL = doc.Metadata[domain.MetaJudgementURL]
	}

	return results, nil
}
