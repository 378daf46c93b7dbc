// Package status provides the status bar shown at the bottom of every view.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/styles"
)

// State is the activity shown on the left of the bar.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateLoading   State = "loading"
	StateAsking    State = "asking"
	StateError     State = "error"
)

// Bar displays the current activity and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	hints   []key.Binding
	state   State
	message string
	count   int
	width   int
}

// NewBar creates a status bar showing hints on the right.
func NewBar(s *styles.Styles, hints ...key.Binding) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s, hints: hints, state: StateReady, width: 80}
}

// View renders the bar across the full width.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderHints()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateSearching:
		return b.styles.Muted.Render("Searching...")
	case StateLoading:
		return b.styles.Muted.Render("Loading...")
	case StateAsking:
		return b.styles.Muted.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateResults:
		if b.message != "" {
			return b.styles.Normal.Render(b.message)
		}
		return b.styles.Normal.Render(fmt.Sprintf("%d results", b.count))
	case StateReady:
	}
	if b.message != "" {
		return b.styles.Normal.Render(b.message)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderHints() string {
	hints := make([]string, 0, len(b.hints))
	for _, binding := range b.hints {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetHints replaces the bindings shown on the right.
func (b *Bar) SetHints(hints ...key.Binding) { b.hints = hints }

func (b *Bar) SetState(state State) { b.state = state }

func (b *Bar) State() State { return b.state }

func (b *Bar) SetMessage(message string) { b.message = message }

func (b *Bar) Message() string { return b.message }

func (b *Bar) SetResultCount(count int) { b.count = count }

func (b *Bar) ResultCount() int { return b.count }

func (b *Bar) SetWidth(width int) { b.width = width }

// Clear resets the bar to ready with no message.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.count = 0
}
