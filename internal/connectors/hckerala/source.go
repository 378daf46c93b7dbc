package hckerala

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Verify interface compliance.
var _ driven.CaseSource = (*LiveSource)(nil)

type query struct {
	caseType string
	year     int
}

// LiveSource pulls cases straight from the portal. Listings are fetched one
// query at a time and details one case at a time, only when Next is called.
type LiveSource struct {
	portal  driven.Portal
	queries []query
	pending []domain.CaseListing
	row     int
	limit   int
}

// NewLiveSource creates a source over every (case type, year) pair.
// A positive limit caps the number of cases yielded.
func NewLiveSource(portal driven.Portal, caseTypes []string, years []int, limit int) (*LiveSource, error) {
	if len(caseTypes) == 0 || len(years) == 0 {
		return nil, fmt.Errorf("%w: at least one case type and one year are required", domain.ErrInvalidInput)
	}
	s := &LiveSource{portal: portal, limit: limit}
	for _, ct := range caseTypes {
		for _, y := range years {
			s.queries = append(s.queries, query{caseType: ct, year: y})
		}
	}
	return s, nil
}

// Next returns the next case. A failed details page is reported in the item;
// a failed listing query ends iteration.
func (s *LiveSource) Next(ctx context.Context) (domain.CaseItem, error) {
	if s.limit > 0 && s.row >= s.limit {
		return domain.CaseItem{}, io.EOF
	}

	for len(s.pending) == 0 {
		if len(s.queries) == 0 {
			return domain.CaseItem{}, io.EOF
		}
		q := s.queries[0]
		s.queries = s.queries[1:]

		listings, err := s.portal.SearchCases(ctx, q.caseType, q.year)
		if err != nil {
			return domain.CaseItem{}, fmt.Errorf("listing %s/%d: %w", q.caseType, q.year, err)
		}
		logger.Info("case type %s, year %d: %d cases", q.caseType, q.year, len(listings))
		s.pending = listings
	}

	listing := s.pending[0]
	s.pending = s.pending[1:]
	s.row++

	record, err := s.portal.CaseDetails(ctx, listing)
	if err != nil {
		stage := domain.StageParse
		if errors.Is(err, domain.ErrNetwork) {
			stage = domain.StageFetch
		}
		return domain.CaseItem{Row: s.row, CNRNumber: listing.CNRNumber, Err: domain.NewStageError(stage, err)}, nil
	}
	return domain.CaseItem{Row: s.row, CNRNumber: record.CNRNumber, Record: record}, nil
}

// Close is a no-op. The portal client has nothing to release.
func (s *LiveSource) Close() error {
	return nil
}
