// Package ai creates and validates the Ollama-backed AI services.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/casedocs/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/custodia-labs/casedocs/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
// A nil service means it was unreachable; Warnings says why.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Warnings         []string
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init creates both services and pings them. Unreachable services are
// dropped with a warning so callers can degrade to keyword search.
func Init(ctx context.Context, settings domain.AISettings) *InitResult {
	result := &InitResult{}

	embedder, err := CreateAndValidateEmbeddingService(ctx, settings)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	} else {
		result.EmbeddingService = embedder
	}

	llm, err := CreateAndValidateLLMService(ctx, settings)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	} else {
		result.LLMService = llm
	}

	return result
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// An empty embedding model disables embeddings without error.
func CreateAndValidateEmbeddingService(ctx context.Context, settings domain.AISettings) (driven.EmbeddingService, error) {
	if settings.EmbeddingModel == "" {
		return nil, nil
	}

	svc := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.EmbeddingModel,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: embedding model %s unreachable at %s (%w); search falls back to keywords",
			domain.ErrEmbeddingUnavailable, settings.EmbeddingModel, settings.BaseURL, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// An empty LLM model disables question answering without error.
func CreateAndValidateLLMService(ctx context.Context, settings domain.AISettings) (driven.LLMService, error) {
	if settings.LLMModel == "" {
		return nil, nil
	}

	svc := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.LLMModel,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: model %s unreachable at %s (%w); question answering is disabled",
			domain.ErrLLMUnavailable, settings.LLMModel, settings.BaseURL, err)
	}
	return svc, nil
}
