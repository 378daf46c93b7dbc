// Package domain defines the core business entities for casedocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CaseRecord: One court case as scraped from the portal
//   - Document: The composed, chunk-delimited unit stored in a collection
//   - Extraction: Text recovered from a single downloaded PDF
//   - IngestReport: Per-case outcome of an ingestion run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
