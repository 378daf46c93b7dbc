package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

func TestAskCmd_Args(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "ask")

	assert.Error(t, err)
}

func TestAskCmd_LongListsLanguages(t *testing.T) {
	assert.Contains(t, askCmd.Long, "ml (Malayalam)")
	assert.Contains(t, askCmd.Long, "ur (Urdu)")
}

func TestAskCmd_Once(t *testing.T) {
	env := setupTestServices(t)

	out, err := run(t, "ask", "id_1", "what compensation was awarded?", "--lang", "Malayalam")

	require.NoError(t, err)
	assert.Contains(t, out, "answer 1 (ml)")
	assert.Equal(t, []string{"what compensation was awarded?"}, env.session.questions)
	assert.Equal(t, []domain.Language{domain.LangMalayalam}, env.session.langs)
}

func TestAskCmd_UnsupportedLanguage(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "ask", "id_1", "question", "-l", "klingon")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskCmd_UnknownDocument(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "ask", "id_42", "question")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAskCmd_NotConfigured(t *testing.T) {
	env := setupTestServices(t)
	env.services.QnA = nil

	_, err := run(t, "ask", "id_1", "question")

	assert.EqualError(t, err, "question answering not configured")
}

func TestAskCmd_Loop(t *testing.T) {
	env := setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("first question\n\n/reset\nsecond question\n/quit\nnever asked\n"))

	out, err := run(t, "ask", "id_1")

	require.NoError(t, err)
	assert.Equal(t, []string{"first question", "second question"}, env.session.questions)
	assert.Equal(t, 1, env.session.resets)
	assert.Contains(t, out, "answer 1 (en)")
	assert.Contains(t, out, "Conversation cleared.")
	assert.Contains(t, out, "answer 2 (en)")
	assert.NotContains(t, out, "> ", "no prompt when stdin is not a terminal")
}

func TestAskCmd_LoopStopsOnErrorWhenPiped(t *testing.T) {
	env := setupTestServices(t)
	rootCmd.SetIn(strings.NewReader("fail\nlater\n"))

	_, err := run(t, "ask", "id_1")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Empty(t, env.session.questions)
}

func TestIsInteractive_NonFile(t *testing.T) {
	assert.False(t, isInteractive(strings.NewReader("")))
}
