package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity or optional document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// Pipeline Errors.

	// ErrNetwork indicates an HTTP failure, timeout or non-200 response.
	ErrNetwork = errors.New("network error")

	// ErrParse indicates expected HTML structure was absent.
	ErrParse = errors.New("parse error")

	// ErrExtraction indicates a PDF was unreadable or OCR failed.
	ErrExtraction = errors.New("extraction error")

	// ErrOCRUnavailable indicates the binary was built without OCR support.
	ErrOCRUnavailable = errors.New("ocr unavailable")

	// AI Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

// Stage names a step of the ingestion pipeline.
type Stage string

const (
	StageParse    Stage = "parse"
	StageResolve  Stage = "resolve"
	StageFetch    Stage = "fetch"
	StageExtract  Stage = "extract"
	StageCompose  Stage = "compose"
	StageIndex    Stage = "index"
	StageCleanup  Stage = "cleanup"
	StageDownload Stage = "download"
)

// StageError records which stage failed and why.
type StageError struct {
	Stage Stage
	Err   error
}

// NewStageError wraps err with the failing stage.
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage recorded in err, or "" when err carries none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
