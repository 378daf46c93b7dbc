// Package input provides the labelled text field used by the TUI views.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/styles"
)

// minWidth is the narrowest the text area is allowed to get.
const minWidth = 20

// Field is a focused single-line input with a label.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewField creates a field showing label before the text area.
func NewField(s *styles.Styles, label, placeholder string, charLimit int) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = 50
	ti.Focus()

	return &Field{textinput: ti, styles: s, label: label, width: 60}
}

// NewSearchField creates the query field of the search view.
func NewSearchField(s *styles.Styles) *Field {
	return NewField(s, "Search: ", "case title, party, act or section...", 256)
}

// NewQuestionField creates the question field of the chat view.
func NewQuestionField(s *styles.Styles) *Field {
	return NewField(s, "Ask: ", "ask a question about this case...", 1024)
}

// Init starts the cursor blinking.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the text area side by side.
func (f *Field) View() string {
	label := f.styles.Title.Render(f.label)
	area := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, area)
}

func (f *Field) Value() string { return f.textinput.Value() }

func (f *Field) SetValue(value string) { f.textinput.SetValue(value) }

func (f *Field) Focus() tea.Cmd { return f.textinput.Focus() }

func (f *Field) Blur() { f.textinput.Blur() }

func (f *Field) Focused() bool { return f.textinput.Focused() }

func (f *Field) Reset() { f.textinput.Reset() }

func (f *Field) Width() int { return f.width }

// SetWidth fits the text area into width, leaving room for the label and border.
func (f *Field) SetWidth(width int) {
	f.width = width
	area := width - lipgloss.Width(f.label) - 6
	if area < minWidth {
		area = minWidth
	}
	f.textinput.Width = area
}
