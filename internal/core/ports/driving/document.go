package driving

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// DocumentService reads documents from the active collection.
type DocumentService interface {
	// List returns every document in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Count returns the number of documents.
	Count(ctx context.Context) (int, error)

	// Open opens the court documents of a case in the default browser.
	Open(ctx context.Context, documentID string) error
}
