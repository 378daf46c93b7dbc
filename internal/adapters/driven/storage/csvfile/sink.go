package csvfile

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.CaseSink = (*Sink)(nil)

// Sink writes case records as CSV rows under Header.
type Sink struct {
	file   io.Closer
	writer *csv.Writer
}

// Create truncates path, creating parent directories, and writes the header.
func Create(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	sink, err := NewSink(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	sink.file = f
	return sink, nil
}

// NewSink writes the header row to w.
func NewSink(w io.Writer) (*Sink, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return &Sink{writer: writer}, nil
}

// Write appends one record and flushes it.
func (s *Sink) Write(ctx context.Context, record *domain.CaseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return err
	}

	acts, err := marshalList(record.Acts, record.RawActs)
	if err != nil {
		return fmt.Errorf("encoding acts: %w", err)
	}
	hearings, err := marshalList(record.Hearings, record.RawHearings)
	if err != nil {
		return fmt.Errorf("encoding hearings: %w", err)
	}

	row := []string{
		record.CINumber,
		record.CNRNumber,
		record.CaseNumber,
		record.CaseTitle,
		record.CaseType,
		record.CaseStatus,
		record.FilingDate,
		record.RegistrationDate,
		acts,
		record.Petitioner,
		record.Respondent,
		record.Judge,
		record.Bench,
		hearings,
		record.JudgementDate,
		domain.FormatURLList(record.InterimOrderURLs),
		record.JudgementURL,
	}
	if err := s.writer.Write(row); err != nil {
		return fmt.Errorf("writing %s: %w", record.CNRNumber, err)
	}
	s.writer.Flush()
	return s.writer.Error()
}

// marshalList encodes v as JSON, writing empty slices as "[]". An empty
// slice with an undecoded raw cell writes the raw cell back unchanged.
func marshalList[T any](v []T, raw string) (string, error) {
	if len(v) == 0 {
		if raw != "" {
			return raw, nil
		}
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Close flushes buffered rows and closes the file, if the sink owns one.
func (s *Sink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		if s.file != nil {
			s.file.Close()
		}
		return fmt.Errorf("flushing: %w", err)
	}
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
