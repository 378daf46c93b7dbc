package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// SearchInput is the input schema for the search_cases tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"words or a description of the case to find"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_cases tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID       string   `json:"document_id"`
	Title            string   `json:"title"`
	CaseType         string   `json:"case_type"`
	CNRNumber        string   `json:"cnr_num"`
	Score            float64  `json:"score"`
	InterimOrderURLs []string `json:"interim_order_urls"`
	JudgementURL     string   `json:"judgement_url,omitempty"`
}

// AskInput is the input schema for the ask_case tool.
type AskInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of the case document, as returned by search_cases"`
	Question   string `json:"question" jsonschema:"the question about the case"`
	Language   string `json:"language,omitempty" jsonschema:"answer language code or name (default en)"`
}

// AskOutput is the output schema for the ask_case tool.
type AskOutput struct {
	Answer   string   `json:"answer"`
	Language string   `json:"language"`
	Sources  []string `json:"sources"`
}

// GetDocumentInput is the input schema for the get_case_document tool.
type GetDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of the case document"`
}

// GetDocumentOutput is the output schema for the get_case_document tool.
type GetDocumentOutput struct {
	DocumentID string            `json:"document_id"`
	Title      string            `json:"title"`
	Text       string            `json:"text"`
	Metadata   map[string]string `json:"metadata"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_cases",
		Description: "Search indexed Kerala High Court case documents",
	}, s.handleSearch)

	if s.ports.QnA != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_case",
			Description: "Answer a question from the orders and judgement of one case",
		}, s.handleAsk)
	}

	if s.ports.Document != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_case_document",
			Description: "Return the full text and metadata of one case document",
		}, s.handleGetDocument)
	}
}

// handleSearch handles the search_cases tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	results, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		doc := &results[i].Document
		output.Results[i] = SearchResultOutput{
			DocumentID:       doc.ID,
			Title:            doc.Title(),
			CaseType:         doc.Metadata[domain.MetaCaseType],
			CNRNumber:        doc.Metadata[domain.MetaCNRNumber],
			Score:            results[i].Score,
			InterimOrderURLs: results[i].InterimOrderURLs,
			JudgementURL:     results[i].JudgementURL,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask_case tool invocation. Each call is a fresh
// conversation; callers carry context in the question.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.QnA == nil {
		return nil, AskOutput{}, ErrQnAUnavailable
	}

	lang, err := domain.ParseLanguage(input.Language)
	if err != nil {
		return nil, AskOutput{}, err
	}

	session, err := s.ports.QnA.OpenSession(ctx, input.DocumentID)
	if err != nil {
		return nil, AskOutput{}, fmt.Errorf("opening %s: %w", input.DocumentID, err)
	}

	answer, err := session.Ask(ctx, input.Question, lang)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:   answer.Text,
		Language: string(answer.Language),
		Sources:  make([]string, len(answer.Sources)),
	}
	for i, src := range answer.Sources {
		output.Sources[i] = src.Content
	}
	return nil, output, nil
}

// handleGetDocument handles the get_case_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	doc, err := s.ports.Document.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}
	return nil, GetDocumentOutput{
		DocumentID: doc.ID,
		Title:      doc.Title(),
		Text:       doc.Text,
		Metadata:   doc.Metadata,
	}, nil
}
