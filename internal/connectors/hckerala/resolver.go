package hckerala

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.PDFResolver = (*Resolver)(nil)

// Resolver turns a viewer URL into the direct PDF URL embedded in the
// viewer page's object element.
type Resolver struct {
	client *Client
}

// NewResolver creates a resolver sharing client's session.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// ResolvePDFURL loads the viewer page and returns the object data URL.
// A relative data URL is resolved against the viewer URL.
func (r *Resolver) ResolvePDFURL(ctx context.Context, viewerURL string) (string, error) {
	doc, err := r.client.getDocument(ctx, viewerURL)
	if err != nil {
		return "", domain.NewStageError(domain.StageResolve, err)
	}

	object := doc.Find("object").First()
	if object.Length() == 0 {
		return "", domain.NewStageError(domain.StageResolve,
			fmt.Errorf("%w: no object element in viewer page", domain.ErrNotFound))
	}
	data := strings.TrimSpace(object.AttrOr("data", ""))
	if data == "" {
		return "", domain.NewStageError(domain.StageResolve,
			fmt.Errorf("%w: object element has no data URL", domain.ErrNotFound))
	}

	base, err := url.Parse(viewerURL)
	if err != nil {
		return "", domain.NewStageError(domain.StageResolve,
			fmt.Errorf("%w: viewer URL: %v", domain.ErrInvalidInput, err))
	}
	ref, err := url.Parse(data)
	if err != nil {
		return "", domain.NewStageError(domain.StageResolve,
			fmt.Errorf("%w: data URL %q: %v", domain.ErrParse, data, err))
	}
	return base.ResolveReference(ref).String(), nil
}
