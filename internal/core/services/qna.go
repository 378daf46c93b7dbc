package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Ensure QnAService and chatSession implement the interfaces.
var (
	_ driving.QnAService  = (*QnAService)(nil)
	_ driving.ChatSession = (*chatSession)(nil)
)

// Retrieval parameters for question answering.
const (
	retrieveK      = 4
	retrieveFetchK = 20
	mmrLambda      = 0.5
)

// minLengthHint is appended to every question sent to the model.
const minLengthHint = "Provide the answer in at least 60 words."

// QnAService answers questions about single documents of a collection.
type QnAService struct {
	collection  driven.Collection
	llm         driven.LLMService
	embedder    driven.EmbeddingService
	prompts     driven.PromptStore
	splitter    driven.TextSplitter
	temperature float64
}

// NewQnAService creates a question answering service.
// The embedder is optional; without it chunks are ranked by keyword overlap.
func NewQnAService(
	collection driven.Collection,
	llm driven.LLMService,
	embedder driven.EmbeddingService,
	prompts driven.PromptStore,
	splitter driven.TextSplitter,
	temperature float64,
) *QnAService {
	return &QnAService{
		collection:  collection,
		llm:         llm,
		embedder:    embedder,
		prompts:     prompts,
		splitter:    splitter,
		temperature: temperature,
	}
}

// OpenSession chunks the document and indexes the chunks for retrieval.
func (s *QnAService) OpenSession(ctx context.Context, docID string) (driving.ChatSession, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	docs, err := s.collection.Get(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", docID, err)
	}
	doc := docs[0]

	var chunks []domain.Chunk
	for _, section := range doc.Sections() {
		for _, c := range s.splitter.Process(doc.ID, section) {
			c.Position = len(chunks)
			chunks = append(chunks, c)
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %s has no text", domain.ErrNotFound, docID)
	}

	session := &chatSession{service: s, docID: doc.ID, chunks: chunks}
	if s.embedder != nil {
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		switch {
		case err != nil:
			logger.Warn("embedding %s failed, using keyword retrieval: %v", doc.ID, err)
		case len(vectors) != len(chunks):
			logger.Warn("embedding %s returned %d vectors for %d chunks, using keyword retrieval",
				doc.ID, len(vectors), len(chunks))
		default:
			session.vectors = vectors
		}
	}

	logger.Debug("opened session on %s with %d chunks (vectors=%t)", doc.ID, len(chunks), session.vectors != nil)
	return session, nil
}

// chatSession holds the chunk index and history of one conversation.
type chatSession struct {
	service *QnAService
	docID   string
	chunks  []domain.Chunk
	vectors [][]float32
	history []domain.ChatTurn
}

func (c *chatSession) DocumentID() string {
	return c.docID
}

func (c *chatSession) History() []domain.ChatTurn {
	out := make([]domain.ChatTurn, len(c.history))
	copy(out, c.history)
	return out
}

func (c *chatSession) Reset() {
	c.history = nil
}

// Ask condenses question against the history, retrieves supporting chunks
// and asks the model to answer from them.
func (c *chatSession) Ask(ctx context.Context, question string, lang domain.Language) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if lang == "" {
		lang = domain.LangEnglish
	}

	standalone, err := c.condense(ctx, question)
	if err != nil {
		return nil, err
	}

	sources, err := c.retrieve(ctx, standalone)
	if err != nil {
		return nil, err
	}

	prompt, err := c.answerPrompt(sources, standalone, lang)
	if err != nil {
		return nil, err
	}

	text, err := c.service.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: c.service.temperature})
	if err != nil {
		return nil, fmt.Errorf("answer question: %w", err)
	}

	c.history = append(c.history, domain.ChatTurn{Question: question, Answer: text})
	return &domain.Answer{Text: text, Language: lang, Sources: sources}, nil
}

// condense rewrites a follow-up into a standalone question.
func (c *chatSession) condense(ctx context.Context, question string) (string, error) {
	if len(c.history) == 0 {
		return question, nil
	}

	tmpl, err := c.service.prompts.Load(driven.PromptCondenseQuestion)
	if err != nil {
		return "", fmt.Errorf("load prompt: %w", err)
	}

	var history strings.Builder
	for _, turn := range c.history {
		fmt.Fprintf(&history, "Human: %s\nAssistant: %s\n", turn.Question, turn.Answer)
	}

	rewritten, err := c.service.llm.Generate(ctx, fmt.Sprintf(tmpl, history.String(), question),
		driven.GenerateOptions{Temperature: 0})
	if err != nil {
		return "", fmt.Errorf("condense question: %w", err)
	}
	if rewritten = strings.TrimSpace(rewritten); rewritten == "" {
		return question, nil
	}
	logger.Debug("condensed question: %s", rewritten)
	return rewritten, nil
}

func (c *chatSession) answerPrompt(sources []domain.Chunk, question string, lang domain.Language) (string, error) {
	tmpl, err := c.service.prompts.Load(driven.PromptAnswerQuestion)
	if err != nil {
		return "", fmt.Errorf("load prompt: %w", err)
	}

	parts := make([]string, len(sources))
	for i, src := range sources {
		parts[i] = src.Content
	}
	prompt := fmt.Sprintf(tmpl, strings.Join(parts, "\n\n"), question+" "+minLengthHint)

	if lang != domain.LangEnglish {
		langTmpl, err := c.service.prompts.Load(driven.PromptAnswerLanguage)
		if err != nil {
			return "", fmt.Errorf("load prompt: %w", err)
		}
		prompt += "\n" + fmt.Sprintf(langTmpl, lang.Name())
	}
	return prompt, nil
}

// retrieve picks retrieveK chunks. With vectors the candidates are the
// retrieveFetchK nearest chunks, reranked by maximal marginal relevance.
func (c *chatSession) retrieve(ctx context.Context, query string) ([]domain.Chunk, error) {
	if c.vectors == nil {
		return c.keywordRetrieve(query), nil
	}

	qv, err := c.service.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("embedding query failed, using keyword retrieval: %v", err)
		return c.keywordRetrieve(query), nil
	}

	candidates := make([]int, len(c.chunks))
	relevance := make([]float64, len(c.chunks))
	for i := range c.chunks {
		candidates[i] = i
		relevance[i] = domain.CosineSimilarity(qv, c.vectors[i])
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return relevance[candidates[a]] > relevance[candidates[b]]
	})
	if len(candidates) > retrieveFetchK {
		candidates = candidates[:retrieveFetchK]
	}

	picked := mmr(candidates, relevance, c.vectors, retrieveK, mmrLambda)
	out := make([]domain.Chunk, len(picked))
	for i, idx := range picked {
		out[i] = c.chunks[idx]
	}
	return out, nil
}

func (c *chatSession) keywordRetrieve(query string) []domain.Chunk {
	order := make([]int, len(c.chunks))
	scores := make([]float64, len(c.chunks))
	for i, chunk := range c.chunks {
		order[i] = i
		scores[i] = domain.KeywordScore(query, chunk.Content)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > retrieveK {
		order = order[:retrieveK]
	}
	out := make([]domain.Chunk, len(order))
	for i, idx := range order {
		out[i] = c.chunks[idx]
	}
	return out
}

// mmr greedily selects k candidates maximising
// lambda*relevance - (1-lambda)*max similarity to those already selected.
func mmr(candidates []int, relevance []float64, vectors [][]float32, k int, lambda float64) []int {
	remaining := append([]int(nil), candidates...)
	var selected []int

	for len(selected) < k && len(remaining) > 0 {
		best, bestScore := 0, 0.0
		for i, idx := range remaining {
			redundancy := 0.0
			for _, sel := range selected {
				if sim := domain.CosineSimilarity(vectors[idx], vectors[sel]); sim > redundancy {
					redundancy = sim
				}
			}
			score := lambda*relevance[idx] - (1-lambda)*redundancy
			if i == 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		selected = append(selected, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return selected
}
