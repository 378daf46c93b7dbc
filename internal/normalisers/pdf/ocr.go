//go:build ocr

package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognises text lines with gosseract.
type Tesseract struct {
	language string
}

// NewTesseract creates an engine for the given Tesseract language code.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language}
}

// Lines returns each recognised text line, in reading order.
// A client is created per page so model memory is released between pages.
func (t *Tesseract) Lines(ctx context.Context, png []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("set OCR language %q: %w", t.language, err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return nil, fmt.Errorf("set OCR image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognise lines: %w", err)
	}

	lines := make([]string, 0, len(boxes))
	for _, box := range boxes {
		lines = append(lines, strings.TrimRight(box.Word, "\n"))
	}
	return lines, nil
}
