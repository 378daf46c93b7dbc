package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_CustomTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#FFFFFF")

	s := NewStyles(theme)

	assert.Equal(t, lipgloss.Color("#FFFFFF"), s.Title.GetForeground())
	assert.True(t, s.Question.GetBold())
	assert.Equal(t, 2, s.Answer.GetPaddingLeft())
}
