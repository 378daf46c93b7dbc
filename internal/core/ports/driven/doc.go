// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for ingestion to function:
//
//   - Portal: Lists case types, searches cases and parses case details
//   - PDFResolver: Turns an indirect portal URL into a direct PDF URL
//   - PDFFetcher: Downloads a PDF into a case folder
//   - TextExtractor: Recovers text from a PDF, with OCR fallback
//   - CaseSource / CaseSink: Reads and writes case records
//   - CollectionStore / Collection: Keyed document store with similarity query
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Without it, collections rank by keyword overlap only.
//   - LLMService: Without it, question answering is disabled.
package driven
