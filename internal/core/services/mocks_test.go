package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockResolver maps viewer URLs to direct URLs.
type mockResolver struct {
	errs map[string]error
}

func (m *mockResolver) ResolvePDFURL(_ context.Context, indirectURL string) (string, error) {
	if err := m.errs[indirectURL]; err != nil {
		return "", err
	}
	return "https://files.example/" + path.Base(indirectURL) + ".pdf", nil
}

// mockFetcher writes a placeholder file into the requested folder.
type mockFetcher struct {
	mu      sync.Mutex
	folders []string
	errs    map[string]error
}

func (m *mockFetcher) FetchAndStore(_ context.Context, directURL, folder string) (string, error) {
	if err := m.errs[directURL]; err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", err
	}
	p := filepath.Join(folder, path.Base(directURL))
	if err := os.WriteFile(p, []byte("%PDF-1.4"), 0o600); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.folders = append(m.folders, folder)
	m.mu.Unlock()
	return p, nil
}

// mockExtractor returns text keyed by file name.
type mockExtractor struct {
	texts map[string]string
	errs  map[string]error
	seen  []string
}

func (m *mockExtractor) Extract(_ context.Context, p string) (domain.Extraction, error) {
	name := filepath.Base(p)
	if _, err := os.Stat(p); err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	m.seen = append(m.seen, name)
	if err := m.errs[name]; err != nil {
		return domain.Extraction{}, err
	}
	text, ok := m.texts[name]
	if !ok {
		text = "Text of " + strings.TrimSuffix(name, ".pdf") + "."
	}
	return domain.Extraction{Path: p, Method: domain.MethodTextLayer, Pages: 1, Text: text}, nil
}

// sliceSource yields fixed case items.
type sliceSource struct {
	items []domain.CaseItem
	pos   int
	err   error
}

func (s *sliceSource) Next(_ context.Context) (domain.CaseItem, error) {
	if s.pos >= len(s.items) {
		if s.err != nil {
			return domain.CaseItem{}, s.err
		}
		return domain.CaseItem{}, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	return item, nil
}

func (s *sliceSource) Close() error { return nil }

// recordingSink collects written records.
type recordingSink struct {
	records []*domain.CaseRecord
	err     error
}

func (s *recordingSink) Write(_ context.Context, record *domain.CaseRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func (s *recordingSink) Close() error { return nil }

// mockPortal serves canned listings and details.
type mockPortal struct {
	types      []domain.CaseType
	listings   map[string][]domain.CaseListing
	searchErrs map[string]error
	detailErrs map[string]error
	searches   []string
}

func listingKey(caseType string, year int) string {
	return fmt.Sprintf("%s/%d", caseType, year)
}

func (m *mockPortal) CaseTypes(_ context.Context) ([]domain.CaseType, error) {
	return m.types, nil
}

func (m *mockPortal) SearchCases(_ context.Context, caseType string, year int) ([]domain.CaseListing, error) {
	key := listingKey(caseType, year)
	m.searches = append(m.searches, key)
	if err := m.searchErrs[key]; err != nil {
		return nil, err
	}
	return m.listings[key], nil
}

func (m *mockPortal) CaseDetails(_ context.Context, listing domain.CaseListing) (*domain.CaseRecord, error) {
	if err := m.detailErrs[listing.CaseNumber]; err != nil {
		return nil, err
	}
	return &domain.CaseRecord{
		CINumber:   listing.CINumber,
		CNRNumber:  listing.CNRNumber,
		CaseNumber: listing.CaseNumber,
		CaseTitle:  listing.CaseTitle,
		CaseType:   "WP(C)",
	}, nil
}

// mockLLM records prompts and replies from a queue.
type mockLLM struct {
	prompts []string
	opts    []driven.GenerateOptions
	replies []string
	err     error
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "answer", nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.GenerateOptions) (string, error) {
	if len(messages) == 0 {
		return "", domain.ErrInvalidInput
	}
	return m.Generate(ctx, messages[len(messages)-1].Content, opts)
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error { return nil }

// mockEmbedder counts vocabulary terms, plus a constant dimension.
type mockEmbedder struct {
	vocab    []string
	batchErr error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	text = strings.ToLower(text)
	v := make([]float32, len(m.vocab)+1)
	for i, w := range m.vocab {
		v[i] = float32(strings.Count(text, w))
	}
	v[len(m.vocab)] = 0.1
	return v, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = m.Embed(ctx, t)
	}
	return out, nil
}

func (m *mockEmbedder) ModelName() string { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error { return nil }

// mockPrompts serves fixed templates.
type mockPrompts struct{}

func (mockPrompts) Load(name string) (string, error) {
	switch name {
	case driven.PromptCondenseQuestion:
		return "HISTORY:\n%s\nFOLLOW UP: %s", nil
	case driven.PromptAnswerQuestion:
		return "CONTEXT:\n%s\nQUESTION: %s", nil
	case driven.PromptAnswerLanguage:
		return "LANGUAGE: %s", nil
	}
	return "", errors.New("unknown prompt")
}

func (mockPrompts) Reload() {}
