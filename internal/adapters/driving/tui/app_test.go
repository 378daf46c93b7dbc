package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Search: &MockSearchService{Results: []domain.SearchResult{
			{Document: domain.Document{ID: "id_1", Metadata: map[string]string{domain.MetaCaseTitle: "Joseph v. State"}}, Score: 0.8},
		}},
		Document: &MockDocumentService{Docs: map[string]*domain.Document{
			"id_1": {ID: "id_1", Text: "CNR Number: KLHC01", Metadata: map[string]string{domain.MetaCaseTitle: "Joseph v. State"}},
		}},
		QnA: &MockQnAService{},
	}
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	app, err := NewApp(newTestPorts(), opts)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

// ==================== Construction Tests ====================

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})

	require.NoError(t, err)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{}, Options{})

	assert.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Options{})

	assert.Equal(t, app, app.WithContext(context.Background()))
}

func TestApp_Init(t *testing.T) {
	t.Run("starts on search", func(t *testing.T) {
		app := newTestApp(t, Options{})

		assert.NotNil(t, app.Init())
		assert.Equal(t, messages.ViewSearch, app.CurrentView())
	})

	t.Run("starts chat on document", func(t *testing.T) {
		app := newTestApp(t, Options{DocumentID: "id_1", Language: domain.LangTamil})

		assert.NotNil(t, app.Init())
		assert.Equal(t, messages.ViewChat, app.CurrentView())
		assert.Equal(t, "id_1", app.ChatView().DocumentID())
		assert.Equal(t, domain.LangTamil, app.ChatView().Language())
	})
}

// ==================== Routing Tests ====================

func TestApp_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Options{})

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.True(t, app.SearchView().Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t, Options{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t, Options{})

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_SearchThenRead(t *testing.T) {
	app := newTestApp(t, Options{})

	res, _ := app.ports.Search.Search(context.Background(), "joseph", domain.SearchOptions{})
	app.Update(messages.SearchCompleted{Query: "joseph", Results: res})
	require.Len(t, app.SearchView().Results(), 1)

	_, cmd := app.Update(messages.DocumentSelected{DocumentID: "id_1"})
	assert.Equal(t, messages.ViewDocument, app.CurrentView())
	require.NotNil(t, cmd)

	app.Update(cmd())
	require.NotNil(t, app.DocumentView().Document())
	assert.Contains(t, app.View(), "CNR Number: KLHC01")

	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Contains(t, app.View(), "Joseph v. State")
}

func TestApp_DocumentLoadError(t *testing.T) {
	app := newTestApp(t, Options{})

	_, cmd := app.Update(messages.DocumentSelected{DocumentID: "id_9"})
	app.Update(cmd())

	assert.ErrorIs(t, app.Err(), domain.ErrNotFound)
}

func TestApp_ChatReturnsToOrigin(t *testing.T) {
	t.Run("from search", func(t *testing.T) {
		app := newTestApp(t, Options{})

		app.Update(messages.ChatRequested{DocumentID: "id_1"})
		assert.Equal(t, messages.ViewChat, app.CurrentView())

		app.Update(messages.ViewChanged{View: messages.ViewSearch})
		assert.Equal(t, messages.ViewSearch, app.CurrentView())
	})

	t.Run("from reader", func(t *testing.T) {
		app := newTestApp(t, Options{})
		_, cmd := app.Update(messages.DocumentSelected{DocumentID: "id_1"})
		app.Update(cmd())

		app.Update(messages.ChatRequested{DocumentID: "id_1"})
		app.Update(messages.ViewChanged{View: messages.ViewSearch})

		assert.Equal(t, messages.ViewDocument, app.CurrentView())
	})
}

func TestApp_SessionOpenedRoutedToChat(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Update(messages.ChatRequested{DocumentID: "id_1"})

	app.Update(messages.SessionOpened{DocumentID: "id_1", Err: domain.ErrLLMUnavailable})

	assert.ErrorIs(t, app.ChatView().Err(), domain.ErrLLMUnavailable)
	assert.Contains(t, app.View(), "Chat: id_1")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, Options{})

	app.Update(messages.ErrorOccurred{Err: domain.ErrInvalidInput})

	assert.ErrorIs(t, app.Err(), domain.ErrInvalidInput)
	assert.ErrorIs(t, app.SearchView().Err(), domain.ErrInvalidInput)
}
