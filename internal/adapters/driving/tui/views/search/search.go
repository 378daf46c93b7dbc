// Package search provides the case search view of the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// Actions offered on a selected result.
const (
	ActionRead   = "Read document"
	ActionAsk    = "Ask questions"
	ActionOpen   = "Open in browser"
	ActionCancel = "Cancel"
)

// ActionMenu is the overlay listing actions for one result.
type ActionMenu struct {
	actions  []string
	selected int
	result   *domain.SearchResult
}

// View is the search view with a query field, results list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	searchService   driving.SearchService
	documentService driving.DocumentService
	ctx             context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
	actionMenu *ActionMenu
}

// NewView creates a search view. documentService may be nil, in which
// case the open action reports it as unavailable.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	documentService driving.DocumentService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.NewSearchField(s),
		list:            list.NewResultList(s),
		statusbar:       status.NewBar(s, km.ShortHelp()...),
		searchService:   searchService,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
		focusInput:      true,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.DocumentOpened:
		if msg.Err != nil {
			v.statusbar.SetMessage("Open: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Opened " + msg.DocumentID + " in browser")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil {
		return v.handleActionMenuKey(msg)
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(keyStr, v.keymap.Actions):
		if result := v.list.SelectedResult(); result != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{ActionRead, ActionAsk, ActionOpen, ActionCancel},
				result:  result,
			}
		}
	case keymap.Matches(keyStr, v.keymap.Read):
		return v, v.executeAction(ActionRead, v.list.SelectedResult())
	case keymap.Matches(keyStr, v.keymap.Ask):
		return v, v.executeAction(ActionAsk, v.list.SelectedResult())
	case keymap.Matches(keyStr, v.keymap.Open):
		return v, v.executeAction(ActionOpen, v.list.SelectedResult())
	case keymap.Matches(keyStr, v.keymap.NewSearch), keymap.Matches(keyStr, v.keymap.Back):
		if keymap.Matches(keyStr, v.keymap.NewSearch) {
			v.input.SetValue("")
		}
		return v, v.Focus()
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // only submit and back are special
	case tea.KeyEnter:
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		return v, v.performSearch(query)
	case tea.KeyEsc:
		if v.list.Count() > 0 {
			v.enterResultsMode()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Submit):
		action := v.actionMenu.actions[v.actionMenu.selected]
		result := v.actionMenu.result
		v.actionMenu = nil
		return v, v.executeAction(action, result)
	case keymap.Matches(keyStr, v.keymap.Back):
		v.actionMenu = nil
	}
	return v, nil
}

// executeAction returns the command carrying out action on result.
func (v *View) executeAction(action string, result *domain.SearchResult) tea.Cmd {
	if result == nil {
		return nil
	}
	id := result.Document.ID

	switch action {
	case ActionRead:
		return func() tea.Msg { return messages.DocumentSelected{DocumentID: id} }
	case ActionAsk:
		return func() tea.Msg { return messages.ChatRequested{DocumentID: id} }
	case ActionOpen:
		if v.documentService == nil {
			v.statusbar.SetMessage("Open: " + ErrNoDocumentService.Error())
			return nil
		}
		svc, ctx := v.documentService, v.ctx
		return func() tea.Msg {
			return messages.DocumentOpened{DocumentID: id, Err: svc.Open(ctx, id)}
		}
	}
	return nil
}

func (v *View) performSearch(query string) tea.Cmd {
	svc, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, domain.SearchOptions{Limit: domain.DefaultSearchLimit})
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(len(msg.Results))
	if len(msg.Results) > 0 {
		v.enterResultsMode()
	}
}

func (v *View) enterResultsMode() {
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetHints(v.keymap.ResultsHelp()...)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("casedocs")+v.styles.Muted.Render("  Kerala High Court cases"), "",
		v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	if v.actionMenu != nil {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

func (v *View) Ready() bool { return v.ready }

func (v *View) Query() string { return v.input.Value() }

func (v *View) SetQuery(query string) { v.input.SetValue(query) }

func (v *View) Results() []domain.SearchResult { return v.list.Results() }

func (v *View) SelectedIndex() int { return v.list.Selected() }

func (v *View) SelectedResult() *domain.SearchResult { return v.list.SelectedResult() }

func (v *View) Err() error { return v.err }

func (v *View) InputFocused() bool { return v.focusInput }

func (v *View) ActionMenuVisible() bool { return v.actionMenu != nil }

func (v *View) StatusMessage() string { return v.statusbar.Message() }

// Focus returns the view to input mode, keeping the current results.
func (v *View) Focus() tea.Cmd {
	v.focusInput = true
	v.statusbar.SetHints(v.keymap.ShortHelp()...)
	return v.input.Focus()
}
