package tui

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	Results []domain.SearchResult
	Err     error
}

func (m *MockSearchService) Search(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
	return m.Results, m.Err
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	Docs map[string]*domain.Document
}

func (m *MockDocumentService) List(context.Context) ([]domain.Document, error) { return nil, nil }

func (m *MockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if doc, ok := m.Docs[id]; ok {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Count(context.Context) (int, error) { return len(m.Docs), nil }

func (m *MockDocumentService) Open(context.Context, string) error { return nil }

// MockQnAService implements driving.QnAService for testing.
type MockQnAService struct{}

func (m *MockQnAService) OpenSession(context.Context, string) (driving.ChatSession, error) {
	return nil, domain.ErrLLMUnavailable
}
