// Package tui provides the interactive terminal interface for casedocs:
// search over ingested cases, a document reader and a chat over one case.
package tui

import (
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Search ranks cases of the active collection.
	Search driving.SearchService

	// Document reads and opens single cases. Optional.
	Document driving.DocumentService

	// QnA answers questions about one case. Optional; the chat view
	// reports it as unavailable when nil.
	QnA driving.QnAService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
