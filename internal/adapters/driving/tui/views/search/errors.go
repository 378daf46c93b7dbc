package search

import "errors"

// ErrNoSearchService indicates that no search service was provided.
var ErrNoSearchService = errors.New("search service is required")

// ErrNoDocumentService indicates that opening cases is not available.
var ErrNoDocumentService = errors.New("document service is not available")
