package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// fakeScanner reports a fixed number of large images.
type fakeScanner struct {
	count     int
	err       error
	gotWidth  int
	gotHeight int
}

func (f *fakeScanner) CountLargeImages(_ context.Context, _ string, minWidth, minHeight int) (int, error) {
	f.gotWidth, f.gotHeight = minWidth, minHeight
	return f.count, f.err
}

// fakeTextLayer records whether it was used.
type fakeTextLayer struct {
	pages []string
	err   error
	calls int
}

func (f *fakeTextLayer) ReadPages(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.pages, f.err
}

// fakeRenderer emits one placeholder image per page.
type fakeRenderer struct {
	pages int
	calls int
}

func (f *fakeRenderer) RenderPages(_ context.Context, _ string, _ float64, fn func(int, []byte) error) (int, error) {
	f.calls++
	for i := 1; i <= f.pages; i++ {
		if err := fn(i, []byte{byte(i)}); err != nil {
			return i - 1, err
		}
	}
	return f.pages, nil
}

// fakeOCR returns two lines per page, tagged with the page byte.
type fakeOCR struct {
	calls int
	err   error
}

func (f *fakeOCR) Lines(_ context.Context, png []byte) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p := string('0' + rune(png[0]))
	return []string{"page " + p + " line 1", "page " + p + " line 2"}, nil
}

func newFakeExtractor(scanner *fakeScanner, text *fakeTextLayer, renderer *fakeRenderer, ocr *fakeOCR) *Extractor {
	return New("eng",
		WithImageScanner(scanner),
		WithTextLayerReader(text),
		WithPageRenderer(renderer),
		WithOCREngine(ocr),
	)
}

func TestExtract_TextLayerWhenNoLargeImages(t *testing.T) {
	scanner := &fakeScanner{count: 0}
	text := &fakeTextLayer{pages: []string{"First page. ", "Second page."}}
	renderer := &fakeRenderer{pages: 2}
	ocr := &fakeOCR{}

	got, err := newFakeExtractor(scanner, text, renderer, ocr).Extract(context.Background(), "/tmp/order.pdf")

	require.NoError(t, err)
	assert.Equal(t, domain.MethodTextLayer, got.Method)
	assert.Equal(t, "First page. Second page.", got.Text)
	assert.Equal(t, 2, got.Pages)
	assert.Equal(t, 1, text.calls)
	assert.Zero(t, renderer.calls, "renderer must not run on the text path")
	assert.Zero(t, ocr.calls, "OCR must not run on the text path")
}

func TestExtract_OCREveryPageWhenLargeImageFound(t *testing.T) {
	scanner := &fakeScanner{count: 1}
	text := &fakeTextLayer{pages: []string{"ignored"}}
	renderer := &fakeRenderer{pages: 3}
	ocr := &fakeOCR{}

	got, err := newFakeExtractor(scanner, text, renderer, ocr).Extract(context.Background(), "/tmp/scan.pdf")

	require.NoError(t, err)
	assert.Equal(t, domain.MethodOCR, got.Method)
	assert.Equal(t, 3, got.Pages)
	assert.Equal(t, 3, ocr.calls, "every page must be OCRed")
	assert.Zero(t, text.calls, "text layer must not be read on the OCR path")
	assert.Equal(t,
		"page 1 line 1\npage 1 line 2\npage 2 line 1\npage 2 line 2\npage 3 line 1\npage 3 line 2\n",
		got.Text)
}

func TestExtract_UsesScannedPageThreshold(t *testing.T) {
	scanner := &fakeScanner{}

	_, err := newFakeExtractor(scanner, &fakeTextLayer{}, &fakeRenderer{}, &fakeOCR{}).
		Extract(context.Background(), "x.pdf")

	require.NoError(t, err)
	assert.Equal(t, 1240, scanner.gotWidth)
	assert.Equal(t, 1754, scanner.gotHeight)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name    string
		scanner *fakeScanner
		text    *fakeTextLayer
		ocr     *fakeOCR
	}{
		{"scan fails", &fakeScanner{err: errors.New("bad xref")}, &fakeTextLayer{}, &fakeOCR{}},
		{"text layer fails", &fakeScanner{}, &fakeTextLayer{err: errors.New("bad font")}, &fakeOCR{}},
		{"ocr fails", &fakeScanner{count: 2}, &fakeTextLayer{}, &fakeOCR{err: errors.New("no model")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFakeExtractor(tt.scanner, tt.text, &fakeRenderer{pages: 1}, tt.ocr).
				Extract(context.Background(), "/tmp/broken.pdf")

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExtraction)
			assert.Contains(t, err.Error(), "broken.pdf")
		})
	}
}

func TestExtract_RealAdaptersRejectGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0600))

	_, err := New("eng").Extract(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_RealAdaptersMissingFile(t *testing.T) {
	_, err := New("eng").Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestWithOptionsIgnoreInvalidValues(t *testing.T) {
	e := New("eng", WithDPI(0), WithThreshold(0, 10))

	assert.Equal(t, float64(DefaultDPI), e.dpi)
	assert.Equal(t, domain.ScannedImageMinWidth, e.minWidth)
	assert.Equal(t, domain.ScannedImageMinHeight, e.minHeight)
}
