package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Ensure ScrapeService implements the interface.
var _ driving.ScrapeService = (*ScrapeService)(nil)

// ScrapeService walks the portal listings and records case details.
type ScrapeService struct {
	portal driven.Portal
}

// NewScrapeService creates a scrape service over portal.
func NewScrapeService(portal driven.Portal) *ScrapeService {
	return &ScrapeService{portal: portal}
}

// CaseTypes lists the case types offered by the portal.
func (s *ScrapeService) CaseTypes(ctx context.Context) ([]domain.CaseType, error) {
	types, err := s.portal.CaseTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list case types: %w", err)
	}
	return types, nil
}

// Scrape queries every case type and year in opts and writes the details
// of each listed case to sink. A case whose details cannot be fetched or
// parsed is recorded as a failure and skipped. An empty opts.CaseTypes
// means every type the portal offers.
func (s *ScrapeService) Scrape(
	ctx context.Context,
	opts domain.ScrapeOptions,
	sink driven.CaseSink,
) (*domain.ScrapeReport, error) {
	start := time.Now()
	report := &domain.ScrapeReport{}
	finish := func(err error) (*domain.ScrapeReport, error) {
		report.Duration = time.Since(start)
		return report, err
	}

	if len(opts.Years) == 0 {
		return finish(fmt.Errorf("%w: no years to scrape", domain.ErrInvalidInput))
	}

	caseTypes := opts.CaseTypes
	if len(caseTypes) == 0 {
		types, err := s.CaseTypes(ctx)
		if err != nil {
			return finish(err)
		}
		for _, t := range types {
			if t.Value != "" {
				caseTypes = append(caseTypes, t.Value)
			}
		}
	}

	for _, caseType := range caseTypes {
		for _, year := range opts.Years {
			if err := ctx.Err(); err != nil {
				return finish(err)
			}

			logger.Section(fmt.Sprintf("Case type %s, %d", caseType, year))
			report.Queries++
			listings, err := s.portal.SearchCases(ctx, caseType, year)
			if err != nil {
				if ctx.Err() != nil {
					return finish(ctx.Err())
				}
				logger.Error("search case type %s year %d: %v", caseType, year, err)
				report.Failures = append(report.Failures, domain.CaseFailure{
					CaseNumber: fmt.Sprintf("%s/%d", caseType, year),
					Err:        domain.NewStageError(domain.StageFetch, err),
				})
				continue
			}
			report.Listed += len(listings)

			for _, listing := range listings {
				if opts.Limit > 0 && report.Scraped >= opts.Limit {
					return finish(nil)
				}
				if err := s.scrapeCase(ctx, listing, sink, report); err != nil {
					return finish(err)
				}
			}
		}
	}

	return finish(nil)
}

// scrapeCase returns an error only when the run cannot continue.
func (s *ScrapeService) scrapeCase(
	ctx context.Context,
	listing domain.CaseListing,
	sink driven.CaseSink,
	report *domain.ScrapeReport,
) error {
	record, err := s.portal.CaseDetails(ctx, listing)
	if err == nil {
		err = record.Validate()
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stage := domain.StageParse
		if errors.Is(err, domain.ErrNetwork) {
			stage = domain.StageFetch
		}
		logger.CaseFailed(listing.CaseNumber, string(stage), err)
		report.Failures = append(report.Failures, domain.CaseFailure{
			CaseNumber: listing.CaseNumber,
			CNRNumber:  listing.CNRNumber,
			Err:        domain.NewStageError(stage, err),
		})
		return nil
	}

	if err := sink.Write(ctx, record); err != nil {
		return fmt.Errorf("write case %s: %w", record.CNRNumber, err)
	}
	report.Scraped++
	logger.Info("scraped %s (%s)", listing.CaseNumber, record.CNRNumber)
	return nil
}
