package domain

import "errors"

// ExtractionMethod records which path produced the text.
type ExtractionMethod string

const (
	// MethodTextLayer reads the embedded text layer page by page.
	MethodTextLayer ExtractionMethod = "text"

	// MethodOCR renders pages and recognises text line by line.
	MethodOCR ExtractionMethod = "ocr"
)

// ScannedImageMinWidth and ScannedImageMinHeight are the pixel dimensions
// an embedded image must both exceed for a PDF to be treated as scanned.
// Roughly an A4 page at 150 DPI.
const (
	ScannedImageMinWidth  = 1240
	ScannedImageMinHeight = 1754
)

// Extraction is the text recovered from one PDF.
type Extraction struct {
	// Kind says whether the PDF was an interim order or a judgement.
	Kind DocumentKind

	// Index is the 1-based position among the case's documents of this kind.
	Index int

	// SourceURL is the indirect portal URL the PDF was reached through.
	SourceURL string

	// Path is the local file the text came from.
	Path string

	Method ExtractionMethod

	// Pages is the number of pages processed.
	Pages int

	Text string
}

// StatusCode is the outcome of one document slot of a case.
type StatusCode string

const (
	StatusOK            StatusCode = "ok"
	StatusNotApplicable StatusCode = "not_applicable"
	StatusFailed        StatusCode = "failed"
)

// StageStatus is the explicit outcome of a pipeline stage for one document.
// It separates "nothing to do" from "tried and failed".
type StageStatus struct {
	Code   StatusCode
	Stage  Stage
	Reason string
}

// OK reports whether the stage succeeded.
func (s StageStatus) OK() bool {
	return s.Code == StatusOK
}

// String renders the status for metadata and logs.
// Examples: "ok", "ok:empty text", "not_applicable", "failed:extract:corrupt xref".
func (s StageStatus) String() string {
	if s.Code == StatusFailed {
		return string(s.Code) + ":" + string(s.Stage) + ":" + s.Reason
	}
	if s.Reason != "" {
		return string(s.Code) + ":" + s.Reason
	}
	return string(s.Code)
}

// StatusFromError builds a failed status from err, defaulting stage to fallback.
func StatusFromError(err error, fallback Stage) StageStatus {
	var se *StageError
	if errors.As(err, &se) {
		return StageStatus{Code: StatusFailed, Stage: se.Stage, Reason: se.Err.Error()}
	}
	return StageStatus{Code: StatusFailed, Stage: fallback, Reason: err.Error()}
}
