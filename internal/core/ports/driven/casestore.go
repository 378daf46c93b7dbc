package driven

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// CaseSource yields case records one at a time.
// Cases are pulled, never pushed, so a slow consumer never overlaps portal
// requests with its own work.
type CaseSource interface {
	// Next returns the next case. A failure limited to one case is reported in
	// CaseItem.Err with a nil error return. A non-nil error ends iteration;
	// io.EOF marks a clean end.
	Next(ctx context.Context) (domain.CaseItem, error)

	// Close releases resources.
	Close() error
}

// CaseSink persists case records.
type CaseSink interface {
	// Write appends one record.
	Write(ctx context.Context, record *domain.CaseRecord) error

	// Close flushes and releases resources.
	Close() error
}
