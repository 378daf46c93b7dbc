package driving

import (
	"context"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// QnAService opens question answering sessions over single documents.
type QnAService interface {
	// OpenSession prepares retrieval over the document with id docID.
	OpenSession(ctx context.Context, docID string) (ChatSession, error)
}

// ChatSession is a conversation about one document.
// Sessions hold history and are not safe for concurrent use.
type ChatSession interface {
	// DocumentID returns the document the session is scoped to.
	DocumentID() string

	// Ask answers question in lang, using prior turns as context.
	Ask(ctx context.Context, question string, lang domain.Language) (*domain.Answer, error)

	// History returns completed turns, oldest first.
	History() []domain.ChatTurn

	// Reset clears the history.
	Reset()
}
