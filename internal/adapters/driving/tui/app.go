package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// Options tune how the app starts.
type Options struct {
	// DocumentID, when set, opens the chat on that case instead of search.
	DocumentID string

	// Language is the initial answer language of the chat view.
	Language domain.Language
}

// App is the main TUI application following the Elm architecture.
type App struct {
	ports  *Ports
	opts   Options
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView     *search.View
	docContentView *doccontent.View
	chatView       *chat.View

	currentView messages.ViewType

	// previousView is where esc from the chat view returns to.
	previousView messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	chatView := chat.NewView(s, km, ports.QnA)
	chatView.SetLanguage(opts.Language)

	return &App{
		ports:          ports,
		opts:           opts,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		searchView:     search.NewView(s, km, ports.Search, ports.Document),
		docContentView: doccontent.NewView(s, km, ports.Document),
		chatView:       chatView,
		currentView:    messages.ViewSearch,
		previousView:   messages.ViewSearch,
	}, nil
}

// WithContext sets the context passed to every service call.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.docContentView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("casedocs")}
	if a.opts.DocumentID != "" {
		a.currentView = messages.ViewChat
		cmds = append(cmds, a.chatView.Start(a.opts.DocumentID))
	} else {
		cmds = append(cmds, a.searchView.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocument
		return a, a.docContentView.Load(msg.DocumentID)

	case messages.DocumentLoaded:
		a.docContentView, cmd = a.docContentView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.DocumentOpened:
		if a.currentView == messages.ViewDocument {
			a.docContentView, cmd = a.docContentView.Update(msg)
		} else {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.ChatRequested:
		a.previousView = a.currentView
		a.currentView = messages.ViewChat
		return a, a.chatView.Start(msg.DocumentID)

	case messages.SessionOpened, messages.AnswerReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		target := msg.View
		if a.currentView == messages.ViewChat && target == messages.ViewSearch &&
			a.previousView == messages.ViewDocument && a.docContentView.DocumentID() == a.chatView.DocumentID() {
			target = messages.ViewDocument
		}
		a.currentView = target
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.updateCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDocument:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDocument:
		return a.docContentView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewSearch:
	}
	return a.searchView.View()
}

// Run starts the TUI on the alternate screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

func (a *App) CurrentView() messages.ViewType { return a.currentView }

func (a *App) Err() error { return a.err }

func (a *App) Ready() bool { return a.ready }

func (a *App) SearchView() *search.View { return a.searchView }

func (a *App) DocumentView() *doccontent.View { return a.docContentView }

func (a *App) ChatView() *chat.View { return a.chatView }

// SetDimensions sizes every view to the terminal.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.docContentView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
}
