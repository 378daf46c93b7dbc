// Package chat provides the question answering view over one case.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// ErrNoQnAService is reported when question answering is not configured.
var ErrNoQnAService = errors.New("question answering is not available; configure an LLM provider")

// reservedLines is the height taken by the header, input and status bar.
const reservedLines = 9

// entry is one rendered exchange of the transcript.
type entry struct {
	question string
	answer   *domain.Answer
	err      error
}

// View is the chat view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	statusbar *status.Bar
	viewport  viewport.Model
	spinner   spinner.Model

	qna driving.QnAService
	ctx context.Context

	documentID string
	session    driving.ChatSession
	language   domain.Language
	entries    []entry
	pending    string
	opening    bool
	err        error
	width      int
	height     int
}

// NewView creates a chat view backed by qna, which may be nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, qna driving.QnAService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionField(s),
		statusbar: status.NewBar(s, km.ChatHelp()...),
		viewport:  viewport.New(80, 24-reservedLines),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		qna:       qna,
		ctx:       context.Background(),
		language:  domain.LangEnglish,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetLanguage sets the answer language.
func (v *View) SetLanguage(lang domain.Language) {
	if lang == "" {
		lang = domain.LangEnglish
	}
	v.language = lang
}

// Start discards any previous conversation and opens a session on documentID.
func (v *View) Start(documentID string) tea.Cmd {
	v.documentID = documentID
	v.session = nil
	v.entries = nil
	v.pending = ""
	v.err = nil
	v.input.Reset()
	v.refresh()

	if v.qna == nil {
		v.setError(ErrNoQnAService)
		return nil
	}

	v.opening = true
	v.statusbar.SetState(status.StateLoading)
	return tea.Batch(v.openSession(documentID), v.spinner.Tick, v.input.Focus())
}

func (v *View) openSession(documentID string) tea.Cmd {
	svc, ctx := v.qna, v.ctx
	return func() tea.Msg {
		session, err := svc.OpenSession(ctx, documentID)
		return messages.SessionOpened{DocumentID: documentID, Session: session, Err: err}
	}
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionOpened:
		if msg.DocumentID != v.documentID {
			return v, nil
		}
		v.opening = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.session = msg.Session
		v.statusbar.Clear()
		v.refresh()
		return v, nil

	case messages.AnswerReceived:
		v.pending = ""
		v.entries = append(v.entries, entry{question: msg.Question, answer: msg.Answer, err: msg.Err})
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.Clear()
		}
		v.refresh()
		return v, nil

	case spinner.TickMsg:
		if !v.Busy() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
	case keymap.Matches(keyStr, v.keymap.Submit):
		return v, v.ask()
	case keymap.Matches(keyStr, v.keymap.Language):
		v.language = nextLanguage(v.language)
		return v, nil
	case keymap.Matches(keyStr, v.keymap.Reset):
		if v.session != nil && !v.Busy() {
			v.session.Reset()
			v.entries = nil
			v.statusbar.SetMessage("History cleared")
			v.refresh()
		}
		return v, nil
	case keymap.Matches(keyStr, v.keymap.PageUp), keymap.Matches(keyStr, v.keymap.PageDown):
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// ask sends the typed question. Only one question is in flight at a time.
func (v *View) ask() tea.Cmd {
	question := strings.TrimSpace(v.input.Value())
	if question == "" || v.session == nil || v.Busy() {
		return nil
	}

	v.input.Reset()
	v.pending = question
	v.statusbar.SetState(status.StateAsking)
	v.refresh()

	return tea.Batch(v.send(question), v.spinner.Tick)
}

func (v *View) send(question string) tea.Cmd {
	session, ctx, lang := v.session, v.ctx, v.language
	return func() tea.Msg {
		answer, err := session.Ask(ctx, question, lang)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// nextLanguage returns the language after lang in display order.
func nextLanguage(lang domain.Language) domain.Language {
	langs := domain.Languages()
	for i, l := range langs {
		if l == lang {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.refresh()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (v *View) refresh() {
	v.viewport.SetContent(v.transcript())
	v.viewport.GotoBottom()
}

func (v *View) transcript() string {
	width := max(v.width-4, 20)
	wrapped := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	switch {
	case v.err != nil && v.session == nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		return b.String()
	case v.opening:
		b.WriteString(v.styles.Muted.Render(v.spinner.View() + " Preparing " + v.documentID + "..."))
		return b.String()
	case len(v.entries) == 0 && v.pending == "":
		b.WriteString(v.styles.Muted.Render("Ask anything about this case."))
	}

	for _, e := range v.entries {
		b.WriteString(v.styles.Question.Render("You: " + e.question))
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(v.styles.Error.Render("  " + e.err.Error()))
		} else {
			b.WriteString(v.styles.Answer.Render(wrapped.Render(e.answer.Text)))
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %s, %d passages", e.answer.Language.Name(), len(e.answer.Sources))))
		}
		b.WriteString("\n\n")
	}

	if v.pending != "" {
		b.WriteString(v.styles.Question.Render("You: " + v.pending))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("  " + v.spinner.View() + " thinking..."))
	}
	return b.String()
}

// View renders the chat view.
func (v *View) View() string {
	header := v.styles.Title.Render("Chat: "+v.documentID) +
		v.styles.Muted.Render("  answers in "+v.language.Name())

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "",
		v.viewport.View(), "",
		v.input.View(), "",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-reservedLines, 3)
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.refresh()
}

// Busy reports whether a session is opening or a question is in flight.
func (v *View) Busy() bool { return v.opening || v.pending != "" }

func (v *View) DocumentID() string { return v.documentID }

func (v *View) Language() domain.Language { return v.language }

func (v *View) Session() driving.ChatSession { return v.session }

func (v *View) Err() error { return v.err }

func (v *View) Turns() int { return len(v.entries) }

func (v *View) Transcript() string { return v.transcript() }
