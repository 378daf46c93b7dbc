package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/custodia-labs/casedocs/internal/logger"
)

// ImageStreamScanner finds image XObjects with pdfcpu.
type ImageStreamScanner struct{}

// CountLargeImages walks the cross-reference table for image streams and
// counts those whose Width and Height both exceed the thresholds. Files that
// fail validation are still counted.
func (ImageStreamScanner) CountLargeImages(ctx context.Context, path string, minWidth, minHeight int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(f, conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		logger.Debug("%s: pdfcpu validation: %v", filepath.Base(path), err)
	}

	count := 0
	for _, entry := range pdfCtx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		subtype, found := sd.Find("Subtype")
		if !found {
			continue
		}
		if name, isName := subtype.(types.Name); !isName || name != "Image" {
			continue
		}

		width := intEntry(pdfCtx, sd, "Width")
		height := intEntry(pdfCtx, sd, "Height")
		if width > minWidth && height > minHeight {
			count++
		}
	}

	return count, nil
}

// intEntry resolves a possibly indirect integer entry, returning 0 when absent.
func intEntry(pdfCtx *model.Context, sd types.StreamDict, key string) int {
	obj, found := sd.Find(key)
	if !found {
		return 0
	}
	obj, err := pdfCtx.Dereference(obj)
	if err != nil {
		return 0
	}
	switch v := obj.(type) {
	case types.Integer:
		return int(v)
	case types.Float:
		return int(v)
	default:
		return 0
	}
}
