package driving

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// IngestService turns case records into indexed documents.
type IngestService interface {
	// Ingest processes every case from source into collection, sequentially.
	// Per-case failures are recorded in the report and never abort the run.
	// The returned error is non-nil only when the run itself cannot continue.
	Ingest(ctx context.Context, source driven.CaseSource, collection driven.Collection) (*domain.IngestReport, error)
}

// ScrapeService discovers case records on the portal.
type ScrapeService interface {
	// CaseTypes lists the case types offered by the portal.
	CaseTypes(ctx context.Context) ([]domain.CaseType, error)

	// Scrape writes every case matching opts to sink.
	Scrape(ctx context.Context, opts domain.ScrapeOptions, sink driven.CaseSink) (*domain.ScrapeReport, error)
}
