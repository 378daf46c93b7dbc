package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{
				{
					Document: domain.Document{
						ID: "id_1",
						Metadata: map[string]string{
							domain.MetaCaseTitle: "Ravi vs State",
							domain.MetaCaseType:  "WP(C)",
							domain.MetaCNRNumber: "KLHC01",
						},
					},
					Score:            0.95,
					InterimOrderURLs: []string{"https://hck.example/a"},
					JudgementURL:     "https://hck.example/j",
				},
			},
		}

		server, err := NewServer(&Ports{Search: mockSearch}, "test")
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "bail", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		r := output.Results[0]
		assert.Equal(t, "id_1", r.DocumentID)
		assert.Equal(t, "Ravi vs State", r.Title)
		assert.Equal(t, "WP(C)", r.CaseType)
		assert.Equal(t, "KLHC01", r.CNRNumber)
		assert.Equal(t, 0.95, r.Score)
		assert.Equal(t, []string{"https://hck.example/a"}, r.InterimOrderURLs)
		assert.Equal(t, "https://hck.example/j", r.JudgementURL)
		assert.Equal(t, 5, mockSearch.opts.Limit)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server, err := NewServer(&Ports{Search: mockSearch}, "test")
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, 10, mockSearch.opts.Limit)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("search failed")}
		server, err := NewServer(&Ports{Search: mockSearch}, "test")
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("answers from one session", func(t *testing.T) {
		session := &mockChatSession{answer: &domain.Answer{
			Text:     "Bail was granted.",
			Language: domain.LangHindi,
			Sources:  []domain.Chunk{{Content: "Bail is granted."}},
		}}
		qna := &mockQnAService{session: session}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, QnA: qna}, "test")
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{DocumentID: "id_3", Question: "Bail?", Language: "hindi"})

		require.NoError(t, err)
		assert.Equal(t, "Bail was granted.", output.Answer)
		assert.Equal(t, "hi", output.Language)
		assert.Equal(t, []string{"Bail is granted."}, output.Sources)
		assert.Equal(t, "id_3", session.docID)
		assert.Equal(t, domain.LangHindi, session.lang)
	})

	t.Run("unsupported language", func(t *testing.T) {
		qna := &mockQnAService{session: &mockChatSession{}}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, QnA: qna}, "test")
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{DocumentID: "id_1", Question: "q", Language: "klingon"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("open failure", func(t *testing.T) {
		qna := &mockQnAService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, QnA: qna}, "test")
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{DocumentID: "id_9", Question: "q"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("without qna service", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{DocumentID: "id_1", Question: "q"})
		assert.ErrorIs(t, err, ErrQnAUnavailable)
	})
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document", func(t *testing.T) {
		mockDoc := &mockDocumentService{document: &domain.Document{
			ID:       "id_2",
			Text:     "CNR Number: KLHC02",
			Metadata: map[string]string{domain.MetaCaseTitle: "Anil vs Sunil"},
		}}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Document: mockDoc}, "test")
		require.NoError(t, err)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "id_2"})

		require.NoError(t, err)
		assert.Equal(t, "id_2", output.DocumentID)
		assert.Equal(t, "Anil vs Sunil", output.Title)
		assert.Equal(t, "CNR Number: KLHC02", output.Text)
	})

	t.Run("returns error", func(t *testing.T) {
		mockDoc := &mockDocumentService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Document: mockDoc}, "test")
		require.NoError(t, err)

		_, _, err = server.handleGetDocument(ctx, nil, GetDocumentInput{DocumentID: "id_2"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
