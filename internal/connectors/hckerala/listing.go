package hckerala

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// ParseCaseTypes reads the case type selector. The first option is a
// placeholder and is skipped.
func ParseCaseTypes(doc *goquery.Document) ([]domain.CaseType, error) {
	sel := doc.Find("select#case_type")
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: case type selector not found", domain.ErrParse)
	}

	var types []domain.CaseType
	sel.Find("option").Each(func(i int, opt *goquery.Selection) {
		if i == 0 {
			return
		}
		value, _ := opt.Attr("value")
		types = append(types, domain.CaseType{
			Value: strings.TrimSpace(value),
			Label: cellText(opt),
		})
	})
	return types, nil
}

// ParseListings reads the status-by-case-type results table.
// The last body row is a footer and is skipped. Rows whose button does not
// carry (ci, cnr) arguments are logged and skipped.
func ParseListings(doc *goquery.Document) ([]domain.CaseListing, error) {
	table := doc.Find("table.table-striped.table-bordered.table-hover").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: results table not found", domain.ErrParse)
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		return nil, nil
	}
	rows = rows.Slice(0, rows.Length()-1)

	var listings []domain.CaseListing
	rows.Each(func(i int, row *goquery.Selection) {
		listing, err := parseListingRow(row)
		if err != nil {
			logger.Warn("results row %d skipped: %v", i+1, err)
			return
		}
		listings = append(listings, listing)
	})
	return listings, nil
}

func parseListingRow(row *goquery.Selection) (domain.CaseListing, error) {
	cells := row.Find("td")
	if cells.Length() < 4 {
		return domain.CaseListing{}, fmt.Errorf("%w: expected 4 cells, got %d", domain.ErrParse, cells.Length())
	}

	onclick, ok := cells.Eq(3).Find("button").First().Attr("onclick")
	if !ok {
		return domain.CaseListing{}, fmt.Errorf("%w: case button has no onclick", domain.ErrParse)
	}
	args := onclickArgs(onclick)
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return domain.CaseListing{}, fmt.Errorf("%w: case button onclick %q", domain.ErrParse, onclick)
	}

	return domain.CaseListing{
		CaseNumber: cellText(cells.Eq(1)),
		CaseTitle:  cellText(cells.Eq(2)),
		CINumber:   args[0],
		CNRNumber:  args[1],
	}, nil
}
