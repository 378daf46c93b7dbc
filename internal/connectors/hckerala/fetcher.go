package hckerala

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/logger"
)

// Verify interface compliance.
var _ driven.PDFFetcher = (*Fetcher)(nil)

// defaultFileName is used when the PDF URL path has no usable base name.
const defaultFileName = "document.pdf"

// Fetcher downloads PDFs into a local folder.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a fetcher sharing client's session.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchAndStore downloads directURL into folder, creating it if needed.
// The file is named after the last path segment of the final URL.
func (f *Fetcher) FetchAndStore(ctx context.Context, directURL, folder string) (string, error) {
	body, final, err := f.client.getBytes(ctx, directURL)
	if err != nil {
		return "", domain.NewStageError(domain.StageFetch, err)
	}
	if len(body) == 0 {
		return "", domain.NewStageError(domain.StageFetch,
			fmt.Errorf("%w: empty body from %s", domain.ErrNetwork, directURL))
	}

	name := path.Base(final.Path)
	if name == "" || name == "." || name == "/" {
		name = defaultFileName
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", domain.NewStageError(domain.StageDownload, fmt.Errorf("creating %s: %w", folder, err))
	}
	dest := filepath.Join(folder, name)
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return "", domain.NewStageError(domain.StageDownload, fmt.Errorf("writing %s: %w", dest, err))
	}

	logger.Debug("stored %d bytes at %s", len(body), dest)
	return dest, nil
}
