package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// DefaultDPI is the render resolution used for OCR.
const DefaultDPI = 300

// ImageScanner counts embedded raster images larger than a threshold.
type ImageScanner interface {
	// CountLargeImages returns how many images are wider than minWidth AND
	// taller than minHeight.
	CountLargeImages(ctx context.Context, path string, minWidth, minHeight int) (int, error)
}

// TextLayerReader reads the embedded text of every page.
type TextLayerReader interface {
	// ReadPages returns page texts in page order.
	ReadPages(ctx context.Context, path string) ([]string, error)
}

// PageRenderer rasterises pages.
type PageRenderer interface {
	// RenderPages calls fn with a PNG of each page, in page order,
	// and returns the page count.
	RenderPages(ctx context.Context, path string, dpi float64, fn func(page int, png []byte) error) (int, error)
}

// OCREngine recognises text in page images.
type OCREngine interface {
	// Lines returns recognised text lines in reading order.
	Lines(ctx context.Context, png []byte) ([]string, error)
}

// Extractor implements driven.TextExtractor.
type Extractor struct {
	scanner   ImageScanner
	textLayer TextLayerReader
	renderer  PageRenderer
	ocr       OCREngine
	dpi       float64
	minWidth  int
	minHeight int
}

// Option configures the extractor.
type Option func(*Extractor)

// WithImageScanner replaces the pdfcpu image scanner.
func WithImageScanner(s ImageScanner) Option {
	return func(e *Extractor) { e.scanner = s }
}

// WithTextLayerReader replaces the text layer reader.
func WithTextLayerReader(r TextLayerReader) Option {
	return func(e *Extractor) { e.textLayer = r }
}

// WithPageRenderer replaces the MuPDF renderer.
func WithPageRenderer(r PageRenderer) Option {
	return func(e *Extractor) { e.renderer = r }
}

// WithOCREngine replaces the Tesseract engine.
func WithOCREngine(o OCREngine) Option {
	return func(e *Extractor) { e.ocr = o }
}

// WithDPI sets the OCR render resolution.
func WithDPI(dpi float64) Option {
	return func(e *Extractor) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// WithThreshold overrides the scanned-image threshold.
func WithThreshold(minWidth, minHeight int) Option {
	return func(e *Extractor) {
		if minWidth > 0 && minHeight > 0 {
			e.minWidth, e.minHeight = minWidth, minHeight
		}
	}
}

// New creates an extractor. ocrLanguage is a Tesseract language code
// such as "eng" or "eng+mal".
func New(ocrLanguage string, opts ...Option) *Extractor {
	e := &Extractor{
		scanner:   ImageStreamScanner{},
		textLayer: TextLayer{},
		renderer:  MuPDFRenderer{},
		ocr:       NewTesseract(ocrLanguage),
		dpi:       DefaultDPI,
		minWidth:  domain.ScannedImageMinWidth,
		minHeight: domain.ScannedImageMinHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the text of the PDF at path.
func (e *Extractor) Extract(ctx context.Context, path string) (domain.Extraction, error) {
	result := domain.Extraction{Path: path}

	large, err := e.scanner.CountLargeImages(ctx, path, e.minWidth, e.minHeight)
	if err != nil {
		return result, extractionError(path, "scan images", err)
	}

	if large > 0 {
		logger.Debug("%s: %d scanned image(s), using OCR", filepath.Base(path), large)
		return e.extractOCR(ctx, path, result)
	}

	logger.Debug("%s: no scanned images, reading text layer", filepath.Base(path))
	return e.extractTextLayer(ctx, path, result)
}

func (e *Extractor) extractTextLayer(ctx context.Context, path string, result domain.Extraction) (domain.Extraction, error) {
	pages, err := e.textLayer.ReadPages(ctx, path)
	if err != nil {
		return result, extractionError(path, "read text layer", err)
	}

	result.Method = domain.MethodTextLayer
	result.Pages = len(pages)
	result.Text = strings.Join(pages, "")
	return result, nil
}

func (e *Extractor) extractOCR(ctx context.Context, path string, result domain.Extraction) (domain.Extraction, error) {
	var b strings.Builder
	pages, err := e.renderer.RenderPages(ctx, path, e.dpi, func(page int, png []byte) error {
		lines, err := e.ocr.Lines(ctx, png)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		return nil
	})
	if err != nil {
		return result, extractionError(path, "ocr", err)
	}

	result.Method = domain.MethodOCR
	result.Pages = pages
	result.Text = b.String()
	return result, nil
}

func extractionError(path, step string, err error) error {
	return fmt.Errorf("%w: %s: %s: %w", domain.ErrExtraction, filepath.Base(path), step, err)
}
