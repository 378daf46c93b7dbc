package hckerala

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Portal = (*Portal)(nil)

// Portal implements the case search and details pages.
type Portal struct {
	client *Client
}

// NewPortal creates a portal sharing client's session.
func NewPortal(client *Client) *Portal {
	return &Portal{client: client}
}

// CaseTypes lists the case types offered by the search form.
func (p *Portal) CaseTypes(ctx context.Context) ([]domain.CaseType, error) {
	doc, err := p.client.getDocument(ctx, p.client.endpoint(pathCaseTypes))
	if err != nil {
		return nil, err
	}
	return ParseCaseTypes(doc)
}

// SearchCases lists the cases of one type registered in year.
func (p *Portal) SearchCases(ctx context.Context, caseType string, year int) ([]domain.CaseListing, error) {
	if caseType == "" {
		return nil, fmt.Errorf("%w: case type is required", domain.ErrInvalidInput)
	}
	doc, err := p.client.postForm(ctx, pathSearchByType, url.Values{
		"case_type": {caseType},
		"case_year": {strconv.Itoa(year)},
	})
	if err != nil {
		return nil, err
	}
	return ParseListings(doc)
}

// CaseDetails loads and parses the details page of one listed case.
func (p *Portal) CaseDetails(ctx context.Context, listing domain.CaseListing) (*domain.CaseRecord, error) {
	doc, err := p.client.postForm(ctx, pathCaseStatus, url.Values{
		"cino":    {listing.CINumber},
		"case_no": {listing.CNRNumber},
	})
	if err != nil {
		return nil, err
	}
	return ParseCaseDetails(listing, doc, p.client.BaseURL())
}
