package driven

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// CollectionStore manages named document collections.
type CollectionStore interface {
	// GetOrCreate opens the named collection, creating it if absent.
	GetOrCreate(ctx context.Context, name string) (Collection, error)

	// Delete removes the named collection and its documents.
	Delete(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}

// Collection is a keyed document store with similarity query.
// The ingestion driver is its only writer.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// Add stores documents. Existing ids fail with domain.ErrAlreadyExists.
	Add(ctx context.Context, docs []domain.Document) error

	// Query returns up to n documents ranked by similarity to text.
	Query(ctx context.Context, text string, n int) ([]domain.SearchResult, error)

	// Get returns documents by id, in the order requested.
	// Unknown ids fail with domain.ErrNotFound.
	Get(ctx context.Context, ids ...string) ([]domain.Document, error)

	// List returns every document in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Count returns the number of documents.
	Count(ctx context.Context) (int, error)
}
