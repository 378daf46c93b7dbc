package pdf

import (
	"context"
	"fmt"

	fitz "github.com/gen2brain/go-fitz"
)

// MuPDFRenderer rasterises pages with go-fitz.
type MuPDFRenderer struct{}

// RenderPages renders each page to PNG at dpi and hands it to fn.
func (MuPDFRenderer) RenderPages(ctx context.Context, path string, dpi float64, fn func(page int, png []byte) error) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		png, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return i, fmt.Errorf("render page %d: %w", i+1, err)
		}
		if err := fn(i+1, png); err != nil {
			return i, err
		}
	}
	return total, nil
}
