package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService reads the documents of one collection.
type DocumentService struct {
	collection driven.Collection
}

// NewDocumentService creates a new document service.
func NewDocumentService(collection driven.Collection) *DocumentService {
	return &DocumentService{collection: collection}
}

// List returns every document in insertion order.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.collection.List(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	docs, err := s.collection.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return &docs[0], nil
}

// Count returns the number of documents.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	return s.collection.Count(ctx)
}

// Open opens the judgement of a document in the default browser, or its
// first interim order when the case has no judgement.
func (s *DocumentService) Open(ctx context.Context, documentID string) error {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return err
	}

	target := doc.Metadata[domain.MetaJudgementURL]
	if target == "" {
		urls, err := doc.InterimOrderURLs()
		if err != nil {
			return fmt.Errorf("document %s: %w", documentID, err)
		}
		if len(urls) > 0 {
			target = urls[0]
		}
	}
	if target == "" {
		return fmt.Errorf("%w: document %s has no court documents", domain.ErrNotFound, documentID)
	}

	return openURL(target)
}

// openURL opens a URL using the system default handler.
var openURL = func(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
