package driven

// PromptStore provides access to LLM prompt templates.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names fail; known names fall back to a built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used by question answering.
const (
	// PromptCondenseQuestion rewrites a follow-up into a standalone question.
	// Placeholders: %s (chat history), %s (follow-up question).
	PromptCondenseQuestion = "condense_question"

	// PromptAnswerQuestion answers from retrieved context.
	// Placeholders: %s (context), %s (question).
	PromptAnswerQuestion = "answer_question"

	// PromptAnswerLanguage is appended when a non-English answer is requested.
	// Placeholders: %s (language name).
	PromptAnswerLanguage = "answer_language"
)
