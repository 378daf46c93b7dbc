package hckerala

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// Table captions on the case details page.
const (
	tableCaseDetails = "CASE DETAILS"
	tableActs        = "ACTS"
	tablePetitioner  = "PETITIONER AND ADVOCATE"
	tableRespondent  = "RESPONDENT AND ADVOCATES"
	tableCaseStatus  = "CASE STATUS"
	tableHearings    = "HISTORY OF CASE HEARING"
	tableJudgement   = "JUDGMENT"
)

// Field names of the flat merge. They double as CSV headers.
const (
	fieldCINumber         = "CI Number"
	fieldCNRNumber        = "CNR Number"
	fieldCaseNumber       = "Case Number"
	fieldCaseTitle        = "Case Title"
	fieldCaseType         = "Case Type"
	fieldCaseStatus       = "Case Status"
	fieldFilingDate       = "Filing Date"
	fieldRegistrationDate = "Registration Date"
	fieldPetitioner       = "Petitioner"
	fieldRespondent       = "Respondent"
	fieldJudge            = "Judge"
	fieldBench            = "Bench"
	fieldJudgementDate    = "Judgement Date"
)

var partyPattern = regexp.MustCompile(`^\d+\)`)

// detailParse accumulates table results in processing order.
type detailParse struct {
	fields   map[string]string
	acts     []domain.ActEntry
	hearings []domain.HearingEvent
}

// merge copies m into the flat field map. Later tables win on collisions.
func (p *detailParse) merge(m map[string]string) {
	for k, v := range m {
		p.fields[k] = v
	}
}

// ParseCaseDetails builds a CaseRecord from the case details page.
// Every table except JUDGMENT is required; a missing table or cell fails
// with domain.ErrParse. Document URLs are collected from the page buttons.
func ParseCaseDetails(listing domain.CaseListing, doc *goquery.Document, baseURL string) (*domain.CaseRecord, error) {
	tables := captionedTables(doc)

	p := &detailParse{fields: map[string]string{
		fieldCINumber:   listing.CINumber,
		fieldCNRNumber:  listing.CNRNumber,
		fieldCaseNumber: listing.CaseNumber,
		fieldCaseTitle:  listing.CaseTitle,
	}}

	steps := []struct {
		caption string
		parse   func(*goquery.Selection) (map[string]string, error)
	}{
		{tableCaseDetails, parseCaseDetailsTable},
		{tableActs, p.parseActsTable},
		{tablePetitioner, partyParser(fieldPetitioner)},
		{tableRespondent, partyParser(fieldRespondent)},
		{tableCaseStatus, parseCaseStatusTable},
		{tableHearings, p.parseHearingsTable},
	}

	for _, step := range steps {
		table, ok := tables[step.caption]
		if !ok {
			return nil, fmt.Errorf("%w: table %q not found", domain.ErrParse, step.caption)
		}
		fields, err := step.parse(table)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", step.caption, err)
		}
		p.merge(fields)
	}

	judgementDate := map[string]string{fieldJudgementDate: ""}
	if table, ok := tables[tableJudgement]; ok {
		fields, err := parseJudgementTable(table)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tableJudgement, err)
		}
		judgementDate = fields
	}
	p.merge(judgementDate)

	interim, judgement := DocumentURLs(doc, baseURL)

	f := p.fields
	return &domain.CaseRecord{
		CINumber:         f[fieldCINumber],
		CNRNumber:        f[fieldCNRNumber],
		CaseNumber:       f[fieldCaseNumber],
		CaseTitle:        f[fieldCaseTitle],
		CaseType:         f[fieldCaseType],
		CaseStatus:       f[fieldCaseStatus],
		FilingDate:       f[fieldFilingDate],
		RegistrationDate: f[fieldRegistrationDate],
		Acts:             p.acts,
		Petitioner:       f[fieldPetitioner],
		Respondent:       f[fieldRespondent],
		Judge:            f[fieldJudge],
		Bench:            f[fieldBench],
		JudgementDate:    f[fieldJudgementDate],
		Hearings:         p.hearings,
		InterimOrderURLs: interim,
		JudgementURL:     judgement,
	}, nil
}

// captionedTables indexes the detail tables by the text of their
// td.table-header cell. The first table with a caption wins.
func captionedTables(doc *goquery.Document) map[string]*goquery.Selection {
	tables := make(map[string]*goquery.Selection)
	doc.Find("table.table-striped.table-bordered.table-hover.table-shadow").Each(func(_ int, t *goquery.Selection) {
		caption := cellText(t.Find("td.table-header").First())
		if caption == "" {
			return
		}
		if _, seen := tables[caption]; !seen {
			tables[caption] = t
		}
	})
	return tables
}

// cellTexts returns the text of every td in table, in document order.
func cellTexts(table *goquery.Selection) []string {
	var texts []string
	table.Find("td").Each(func(_ int, td *goquery.Selection) {
		texts = append(texts, cellText(td))
	})
	return texts
}

// valueAfter returns the cell following the first cell equal to label.
func valueAfter(cells []string, label string) (string, error) {
	for i, c := range cells {
		if c != label {
			continue
		}
		if i+1 >= len(cells) {
			return "", fmt.Errorf("%w: no value after %q", domain.ErrParse, label)
		}
		return cells[i+1], nil
	}
	return "", fmt.Errorf("%w: label %q not found", domain.ErrParse, label)
}

func labelledValues(cells []string, pairs map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for label, field := range pairs {
		v, err := valueAfter(cells, label)
		if err != nil {
			return nil, err
		}
		out[field] = v
	}
	return out, nil
}

func parseCaseDetailsTable(table *goquery.Selection) (map[string]string, error) {
	return labelledValues(cellTexts(table), map[string]string{
		"Case Type":         fieldCaseType,
		"Case Status":       fieldCaseStatus,
		"Filing Date":       fieldFilingDate,
		"Registration Date": fieldRegistrationDate,
	})
}

func parseCaseStatusTable(table *goquery.Selection) (map[string]string, error) {
	return labelledValues(cellTexts(table), map[string]string{
		"Coram": fieldJudge,
		"Bench": fieldBench,
	})
}

// parseActsTable reads the ACTS table by fixed offsets: cell 0 is the
// caption, cells 1-2 the column labels, then (act, section) pairs.
// The first pair is also merged under the column labels.
func (p *detailParse) parseActsTable(table *goquery.Selection) (map[string]string, error) {
	cells := cellTexts(table)
	if len(cells) < 5 {
		return nil, fmt.Errorf("%w: expected at least 5 cells, got %d", domain.ErrParse, len(cells))
	}

	for i := 3; i+1 < len(cells); i += 2 {
		p.acts = append(p.acts, domain.ActEntry{Act: cells[i], Section: cells[i+1]})
	}

	return map[string]string{
		cells[1]: cells[3],
		cells[2]: cells[4],
	}, nil
}

// partyParser reads a party table: cells starting with "<n>)" each name one
// party, and the names are joined with ", ".
func partyParser(field string) func(*goquery.Selection) (map[string]string, error) {
	return func(table *goquery.Selection) (map[string]string, error) {
		var names []string
		for _, c := range cellTexts(table) {
			if !partyPattern.MatchString(c) {
				continue
			}
			names = append(names, strings.TrimSpace(c[strings.Index(c, ")")+1:]))
		}
		return map[string]string{field: strings.Join(names, ", ")}, nil
	}
}

// parseHearingsTable reads the hearing history. Row 0 is the caption,
// row 1 the column headers, and every later row one hearing.
func (p *detailParse) parseHearingsTable(table *goquery.Selection) (map[string]string, error) {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil, fmt.Errorf("%w: hearing table has no header row", domain.ErrParse)
	}

	var headers []string
	rows.Eq(1).Find("td").Each(func(_ int, td *goquery.Selection) {
		headers = append(headers, cellText(td))
	})

	p.hearings = []domain.HearingEvent{}
	rows.Slice(2, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		var ev domain.HearingEvent
		row.Find("td").Each(func(i int, td *goquery.Selection) {
			if i < len(headers) {
				ev.SetField(headers[i], cellText(td))
			}
		})
		p.hearings = append(p.hearings, ev)
	})

	return nil, nil
}

// parseJudgementTable takes the second-to-last cell as the judgement date.
func parseJudgementTable(table *goquery.Selection) (map[string]string, error) {
	cells := cellTexts(table)
	if len(cells) < 2 {
		return nil, fmt.Errorf("%w: judgement table has %d cells", domain.ErrParse, len(cells))
	}
	return map[string]string{fieldJudgementDate: cells[len(cells)-2]}, nil
}
