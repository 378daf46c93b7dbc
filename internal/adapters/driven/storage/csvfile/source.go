package csvfile

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Verify interface compliance.
var _ driven.CaseSource = (*Source)(nil)

// Source reads case records from a CSV file, one row per Next call.
type Source struct {
	file    io.Closer
	reader  *csv.Reader
	columns map[string]int
	row     int

	// legacyActs are the label-named act columns of files written by the
	// original scraper, which stored the first ACTS row as two columns.
	legacyActs map[string]int
}

// Open opens path and validates its header row.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	src, err := NewSource(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src.file = f
	return src, nil
}

// NewSource reads the header from r. Columns are matched by name, so
// extra or reordered columns are accepted.
func NewSource(r io.Reader) (*Source, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty case file", domain.ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", domain.ErrParse, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrParse, name)
		}
	}

	legacyActs := map[string]int{}
	for name, i := range columns {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "under act") || strings.HasPrefix(lower, "under section") {
			legacyActs[name] = i
		}
	}

	return &Source{reader: reader, columns: columns, legacyActs: legacyActs}, nil
}

// Next returns the next row. A row that cannot be decoded is reported in
// the item so the caller can skip it.
func (s *Source) Next(ctx context.Context) (domain.CaseItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CaseItem{}, err
	}

	fields, err := s.reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.CaseItem{}, io.EOF
	}
	s.row++
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return domain.CaseItem{Row: s.row, Err: domain.NewStageError(domain.StageParse,
				fmt.Errorf("%w: %v", domain.ErrParse, err))}, nil
		}
		return domain.CaseItem{}, fmt.Errorf("reading row %d: %w", s.row, err)
	}

	cnr := s.field(fields, colCNRNumber)
	record, err := s.decode(fields)
	if err != nil {
		return domain.CaseItem{Row: s.row, CNRNumber: cnr, Err: domain.NewStageError(domain.StageParse, err)}, nil
	}
	return domain.CaseItem{Row: s.row, CNRNumber: cnr, Record: record}, nil
}

// field returns the trimmed cell of the named column, or "" when absent.
func (s *Source) field(fields []string, name string) string {
	i, ok := s.columns[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func (s *Source) decode(fields []string) (*domain.CaseRecord, error) {
	get := func(name string) string {
		return s.field(fields, name)
	}

	urls, err := domain.ParseURLList(get(colInterimOrderURLs))
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colInterimOrderURLs, err)
	}

	rec := &domain.CaseRecord{
		CINumber:         get(colCINumber),
		CNRNumber:        get(colCNRNumber),
		CaseNumber:       get(colCaseNumber),
		CaseTitle:        get(colCaseTitle),
		CaseType:         get(colCaseType),
		CaseStatus:       get(colCaseStatus),
		FilingDate:       get(colFilingDate),
		RegistrationDate: get(colRegistrationDate),
		Petitioner:       get(colPetitioner),
		Respondent:       get(colRespondent),
		Judge:            get(colJudge),
		Bench:            get(colBench),
		JudgementDate:    get(colJudgementDate),
		InterimOrderURLs: urls,
		JudgementURL:     get(colJudgementURL),
	}

	rec.Acts, rec.RawActs = decodeActs(s.row, get(colActs))
	if len(rec.Acts) == 0 && rec.RawActs == "" {
		rec.Acts = s.legacyActEntries(fields)
	}
	rec.Hearings, rec.RawHearings = decodeHearings(s.row, get(colHearings))

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeActs reads an acts cell. A cell that cannot be decoded is
// returned as raw so the composed document can still show it.
func decodeActs(row int, value string) ([]domain.ActEntry, string) {
	records, err := decodeRecords(value)
	if err != nil {
		logger.Warn("row %d: column %q kept undecoded: %v", row, colActs, err)
		return nil, value
	}
	var acts []domain.ActEntry
	for _, r := range records {
		var a domain.ActEntry
		for k, v := range r {
			a.SetField(k, v)
		}
		acts = append(acts, a)
	}
	return acts, ""
}

// decodeHearings reads a hearings cell written either as JSON by Sink or
// as a Python repr list of dicts keyed by the portal's table headers.
func decodeHearings(row int, value string) ([]domain.HearingEvent, string) {
	records, err := decodeRecords(value)
	if err != nil {
		logger.Warn("row %d: column %q kept undecoded: %v", row, colHearings, err)
		return nil, value
	}
	var hearings []domain.HearingEvent
	for _, r := range records {
		var h domain.HearingEvent
		for k, v := range r {
			h.SetField(k, v)
		}
		hearings = append(hearings, h)
	}
	return hearings, ""
}

// decodeRecords parses a list of flat records, trying JSON first.
func decodeRecords(value string) ([]map[string]string, error) {
	if value == "" {
		return nil, nil
	}
	var records []map[string]string
	if err := json.Unmarshal([]byte(value), &records); err == nil {
		return records, nil
	}
	return domain.ParseRecordList(value)
}

// legacyActEntries builds the single act row stored as label-named columns.
func (s *Source) legacyActEntries(fields []string) []domain.ActEntry {
	var a domain.ActEntry
	found := false
	for name, i := range s.legacyActs {
		if i >= len(fields) {
			continue
		}
		if v := strings.TrimSpace(fields[i]); v != "" && a.SetField(name, v) {
			found = true
		}
	}
	if !found {
		return nil
	}
	return []domain.ActEntry{a}
}

// Close closes the underlying file, if the source owns one.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
