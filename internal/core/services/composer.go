package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// recordsNotAvailable stands in for an absent URL or URL list.
const recordsNotAvailable = "Records not available"

// hyphenRun matches text that would be mistaken for a section separator.
var hyphenRun = regexp.MustCompile(`-{` + fmt.Sprint(len(domain.ChunkSeparator)) + `,}`)

// Composer renders a case record and its extracted texts as one document.
type Composer struct {
	splitter driven.TextSplitter
}

// NewComposer creates a composer that chunks extracted texts with splitter.
func NewComposer(splitter driven.TextSplitter) *Composer {
	return &Composer{splitter: splitter}
}

// Compose returns the document text for record. Sections are joined by a
// line holding domain.ChunkSeparator, so Document.Sections returns exactly
// the output of Chunks.
func (c *Composer) Compose(record *domain.CaseRecord, extractions []domain.Extraction) string {
	return strings.Join(c.Chunks(record, extractions), "\n"+domain.ChunkSeparator+"\n")
}

// Chunks returns the sections of the document in order: the case intro
// blocks followed by the chunks of every non-empty extraction.
func (c *Composer) Chunks(record *domain.CaseRecord, extractions []domain.Extraction) []string {
	var chunks []string
	for _, block := range introBlocks(record) {
		if block = strings.TrimSpace(clean(block)); block != "" {
			chunks = append(chunks, block)
		}
	}

	interim := 0
	for _, ext := range extractions {
		text := strings.TrimSpace(clean(ext.Text))
		if text == "" {
			continue
		}

		var header string
		if ext.Kind == domain.KindJudgement {
			header = string(domain.KindJudgement)
		} else {
			interim++
			n := ext.Index
			if n == 0 {
				n = interim
			}
			header = fmt.Sprintf("%s No. %d", domain.KindInterimOrder, n)
		}

		parts := c.splitter.Split(text)
		for i, part := range parts {
			if i == 0 {
				part = header + "\n" + part
			}
			chunks = append(chunks, part)
		}
	}
	return chunks
}

func introBlocks(r *domain.CaseRecord) []string {
	var details strings.Builder
	labelled(&details, "CI Number", r.CINumber)
	labelled(&details, "CNR Number", r.CNRNumber)
	labelled(&details, "Case Number", r.CaseNumber)
	labelled(&details, "Case Title", r.CaseTitle)
	labelled(&details, "Case Type", r.CaseType)
	labelled(&details, "Case Status", r.CaseStatus)
	labelled(&details, "Filing Date", r.FilingDate)
	labelled(&details, "Registration Date", r.RegistrationDate)
	labelled(&details, "Petitioner", r.Petitioner)
	labelled(&details, "Respondent", r.Respondent)
	labelled(&details, "Judge", r.Judge)
	labelled(&details, "Bench", r.Bench)
	labelled(&details, "Judgement Date", r.JudgementDate)

	var acts strings.Builder
	acts.WriteString("Acts:\n")
	if len(r.Acts) == 0 {
		acts.WriteString(unavailable(r.RawActs) + "\n")
	}
	for i, a := range r.Acts {
		fmt.Fprintf(&acts, "%d. Act: %s, Section: %s\n", i+1, a.Act, a.Section)
	}

	var hearings strings.Builder
	hearings.WriteString("History of Case Hearings:\n")
	if len(r.Hearings) == 0 {
		hearings.WriteString(unavailable(r.RawHearings) + "\n")
	}
	for i, h := range r.Hearings {
		fmt.Fprintf(&hearings, "%d. Business Date: %s\n", i+1, h.BusinessDate)
		labelled(&hearings, "   Cause List Type", h.CauseListType)
		labelled(&hearings, "   Judge", h.Judge)
		labelled(&hearings, "   Next Date", h.NextDate)
		labelled(&hearings, "   Purpose", h.Purpose)
		labelled(&hearings, "   Order", h.Order)
	}

	var urls strings.Builder
	urls.WriteString("List of Interim Order URLs:\n")
	if len(r.InterimOrderURLs) == 0 {
		urls.WriteString(recordsNotAvailable + "\n")
	}
	for i, u := range r.InterimOrderURLs {
		fmt.Fprintf(&urls, "%d. %s\n", i+1, u)
	}
	urls.WriteString("Judgement URL:\n")
	if r.JudgementURL == "" {
		urls.WriteString(recordsNotAvailable + "\n")
	} else {
		urls.WriteString(r.JudgementURL + "\n")
	}

	return []string{details.String(), acts.String(), hearings.String(), urls.String()}
}

// unavailable returns the placeholder for an empty list, or the stored
// cell verbatim when the records exist but could not be decoded.
func unavailable(raw string) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return raw
	}
	return recordsNotAvailable
}

func labelled(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(":")
	if value = strings.TrimSpace(value); value != "" {
		b.WriteString(" ")
		b.WriteString(value)
	}
	b.WriteString("\n")
}

// clean collapses hyphen runs long enough to read as a separator.
func clean(s string) string {
	return hyphenRun.ReplaceAllString(s, "---")
}
