package driven

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// Portal is the court case portal.
// Implementations must issue requests sequentially.
type Portal interface {
	// CaseTypes lists the options of the case type selector.
	CaseTypes(ctx context.Context) ([]domain.CaseType, error)

	// SearchCases lists cases registered under caseType in year.
	SearchCases(ctx context.Context, caseType string, year int) ([]domain.CaseListing, error)

	// CaseDetails fetches and parses the details page of one case.
	// Fails with domain.ErrParse when required tables are missing.
	CaseDetails(ctx context.Context, listing domain.CaseListing) (*domain.CaseRecord, error)
}

// PDFResolver turns an indirect viewer URL into a direct PDF URL.
type PDFResolver interface {
	// ResolvePDFURL returns the data attribute of the viewer's object tag.
	// Fails with domain.ErrNotFound when the page embeds no object and with
	// domain.ErrNetwork on transport failure or non-200 status.
	ResolvePDFURL(ctx context.Context, indirectURL string) (string, error)
}

// PDFFetcher downloads PDFs to local disk.
type PDFFetcher interface {
	// FetchAndStore writes the body of directURL to folder/<last path segment>,
	// creating folder if needed, and returns the local path.
	FetchAndStore(ctx context.Context, directURL, folder string) (string, error)
}

// TextExtractor recovers text from a local PDF.
type TextExtractor interface {
	// Extract fails with domain.ErrExtraction for unreadable input.
	Extract(ctx context.Context, path string) (domain.Extraction, error)
}
