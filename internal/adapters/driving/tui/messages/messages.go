// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// DocumentSelected asks the app to show a document in the reader.
type DocumentSelected struct {
	DocumentID string
}

// DocumentLoaded carries a document fetched for the reader.
type DocumentLoaded struct {
	Document *domain.Document
	Err      error
}

// DocumentOpened reports the outcome of opening a case in the browser.
type DocumentOpened struct {
	DocumentID string
	Err        error
}

// ChatRequested asks the app to start a chat about a document.
type ChatRequested struct {
	DocumentID string
}

// SessionOpened carries a chat session prepared for a document.
type SessionOpened struct {
	DocumentID string
	Session    driving.ChatSession
	Err        error
}

// AnswerReceived carries the reply to one chat question.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewDocument shows the text of one case.
	ViewDocument
	// ViewChat is the question answering view for one case.
	ViewChat
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewDocument:
		return "document"
	case ViewChat:
		return "chat"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
