//go:build !ocr

package pdf

import (
	"context"
	"fmt"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// Tesseract is unavailable without the "ocr" build tag.
type Tesseract struct {
	language string
}

// NewTesseract returns an engine that always fails.
func NewTesseract(language string) *Tesseract {
	return &Tesseract{language: language}
}

// Lines reports that OCR support was not compiled in.
func (t *Tesseract) Lines(_ context.Context, _ []byte) ([]string, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags ocr and install tesseract (language %q)",
		domain.ErrOCRUnavailable, t.language)
}
