package mcp

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	query   string
	opts    domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Count(_ context.Context) (int, error) {
	return len(m.documents), m.err
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return m.err
}

// mockQnAService is a mock implementation of driving.QnAService.
type mockQnAService struct {
	session *mockChatSession
	err     error
}

func (m *mockQnAService) OpenSession(_ context.Context, docID string) (driving.ChatSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.session.docID = docID
	return m.session, nil
}

// mockChatSession is a mock implementation of driving.ChatSession.
type mockChatSession struct {
	docID    string
	answer   *domain.Answer
	err      error
	question string
	lang     domain.Language
}

func (m *mockChatSession) DocumentID() string { return m.docID }

func (m *mockChatSession) Ask(_ context.Context, question string, lang domain.Language) (*domain.Answer, error) {
	m.question = question
	m.lang = lang
	return m.answer, m.err
}

func (m *mockChatSession) History() []domain.ChatTurn { return nil }

func (m *mockChatSession) Reset() {}
