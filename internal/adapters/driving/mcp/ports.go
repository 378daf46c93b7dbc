package mcp

import (
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks case documents.
	Search driving.SearchService

	// Document reads case documents. Optional.
	Document driving.DocumentService

	// QnA answers questions about one document. Optional.
	QnA driving.QnAService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
