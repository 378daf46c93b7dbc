package domain

import (
	"fmt"
	"strings"
)

// CaseRecord represents one court case.
// It is created by the case detail parser and never mutated afterwards.
type CaseRecord struct {
	// CINumber is the portal's internal case identifier.
	CINumber string

	// CNRNumber is the court-assigned unique case number.
	// It keys the per-case download folder.
	CNRNumber string

	// CaseNumber is the display case number (e.g. "WP(C) 123/2023").
	CaseNumber string

	// CaseTitle is the cause title (petitioner vs respondent).
	CaseTitle string

	CaseType         string
	CaseStatus       string
	FilingDate       string
	RegistrationDate string

	// Acts lists the statutes invoked, in table order.
	Acts []ActEntry

	// Petitioner is the comma-joined list of petitioner names.
	Petitioner string

	// Respondent is the comma-joined list of respondent names.
	Respondent string

	Judge         string
	Bench         string
	JudgementDate string

	// Hearings is the ordered hearing history.
	Hearings []HearingEvent

	// InterimOrderURLs are indirect portal URLs, in portal order.
	InterimOrderURLs []string

	// JudgementURL is the indirect judgement URL. Empty for pending cases.
	JudgementURL string

	// RawActs and RawHearings hold stored cells that could not be decoded
	// into Acts and Hearings. They are kept so the records are not lost.
	RawActs     string
	RawHearings string
}

// ActEntry is one row of the ACTS table.
type ActEntry struct {
	Act     string `json:"act"`
	Section string `json:"section"`
}

// HearingEvent is one row of the hearing history table.
type HearingEvent struct {
	CauseListType string `json:"cause_list_type"`
	Judge         string `json:"judge"`
	BusinessDate  string `json:"business_date"`
	NextDate      string `json:"next_date"`
	Purpose       string `json:"purpose"`
	Order         string `json:"order"`
}

// SetField assigns value to the field named by a hearing table header.
// Headers are matched case-insensitively on a keyword, so both portal
// captions ("Cause List Type") and stored keys ("cause_list_type") work.
// It reports whether the header was recognised.
func (h *HearingEvent) SetField(header, value string) bool {
	k := strings.ToLower(header)
	switch {
	case strings.Contains(k, "cause"):
		h.CauseListType = value
	case strings.Contains(k, "judge"):
		h.Judge = value
	case strings.Contains(k, "business"):
		h.BusinessDate = value
	case strings.Contains(k, "next"):
		h.NextDate = value
	case strings.Contains(k, "purpose"):
		h.Purpose = value
	case strings.Contains(k, "order"):
		h.Order = value
	default:
		return false
	}
	return true
}

// SetField assigns value to the act or section by header keyword.
func (a *ActEntry) SetField(header, value string) bool {
	k := strings.ToLower(header)
	switch {
	case strings.Contains(k, "section"):
		a.Section = value
	case strings.Contains(k, "act"):
		a.Act = value
	default:
		return false
	}
	return true
}

// FolderName returns the per-case download folder name.
// Format: <case_type>_<cnr_number>, with path separators replaced.
func (c *CaseRecord) FolderName() string {
	return folderSafe.Replace(fmt.Sprintf("%s_%s", c.CaseType, c.CNRNumber))
}

var folderSafe = strings.NewReplacer("/", "-", "\\", "-", "..", "-")

// Validate checks the identity fields required to process a case.
func (c *CaseRecord) Validate() error {
	if c.CNRNumber == "" {
		return fmt.Errorf("%w: case has no CNR number", ErrInvalidInput)
	}
	return nil
}

// CaseListing is one row of the status-by-case-type search results.
// It carries just enough to request the case details page.
type CaseListing struct {
	CaseNumber string
	CaseTitle  string
	CINumber   string
	CNRNumber  string
}

// CaseType is one option of the portal's case type selector.
type CaseType struct {
	// Value is the form value posted as case_type.
	Value string

	// Label is the human-readable name (e.g. "WP(C)").
	Label string
}

// CaseItem is one element yielded by a case source.
// Err is set when this case alone could not be read or parsed.
type CaseItem struct {
	// Row is the 1-based input position.
	Row int

	// CNRNumber identifies the case when it is known even though the
	// record could not be built.
	CNRNumber string

	Record *CaseRecord
	Err    error
}
