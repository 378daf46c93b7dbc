package domain

// SearchOptions configures a collection query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int
}

// DefaultSearchLimit matches the number of results shown by the search surface.
const DefaultSearchLimit = 10

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Score is the cosine similarity, higher is closer.
	Score float64

	// InterimOrderURLs is the parsed interim order list.
	InterimOrderURLs []string

	// JudgementURL is empty when the case has no judgement.
	JudgementURL string
}

// ChatTurn is one exchange in a question answering session.
type ChatTurn struct {
	Question string
	Answer   string
}

// Answer is the response to one question.
type Answer struct {
	Text     string
	Language Language

	// Sources are the chunks the answer was grounded on.
	Sources []Chunk
}
