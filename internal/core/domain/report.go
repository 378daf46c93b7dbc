package domain

import "time"

// CaseOutcome is the result of processing one case during ingestion.
type CaseOutcome struct {
	// Row is the 1-based position of the case in the input.
	Row int

	CNRNumber string

	// DocumentID is set when the case produced a document.
	DocumentID string

	// Err is set when the case was skipped.
	Err error

	// InterimOrders holds one status per interim order URL, in order.
	InterimOrders []StageStatus

	Judgement StageStatus
}

// Skipped reports whether the case produced no document.
func (o CaseOutcome) Skipped() bool {
	return o.Err != nil
}

// IngestReport summarises an ingestion run.
type IngestReport struct {
	Collection string
	Outcomes   []CaseOutcome
	StartedAt  time.Time
	Duration   time.Duration
}

// Indexed returns the number of documents added.
func (r *IngestReport) Indexed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Skipped() {
			n++
		}
	}
	return n
}

// Skips returns the outcomes of skipped cases.
func (r *IngestReport) Skips() []CaseOutcome {
	var skipped []CaseOutcome
	for _, o := range r.Outcomes {
		if o.Skipped() {
			skipped = append(skipped, o)
		}
	}
	return skipped
}

// ScrapeOptions selects which case listings to scrape.
type ScrapeOptions struct {
	// CaseTypes are case type form values. Empty means every listed type.
	CaseTypes []string

	// Years are the registration years to query.
	Years []int

	// Limit caps the number of cases scraped. Zero means no limit.
	Limit int
}

// ScrapeReport summarises a scrape run.
type ScrapeReport struct {
	Queries  int
	Listed   int
	Scraped  int
	Failures []CaseFailure
	Duration time.Duration
}

// CaseFailure identifies a case that could not be scraped.
type CaseFailure struct {
	CaseNumber string
	CNRNumber  string
	Err        error
}
