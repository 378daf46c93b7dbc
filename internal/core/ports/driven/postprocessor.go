package driven

import "github.com/custodia-labs/casedocs/internal/core/domain"

// TextSplitter breaks text into overlapping chunks.
// Implementations prefer sentence boundaries and never return empty chunks.
type TextSplitter interface {
	// Name returns the splitter name for logging.
	Name() string

	// Split returns the chunk contents of text in order.
	Split(text string) []string

	// Process splits text into chunks belonging to documentID.
	Process(documentID, text string) []domain.Chunk
}
