package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		assert.Equal(t, DefaultChunkSize, p.chunkSize)
		assert.Equal(t, DefaultChunkOverlap, p.overlap)
	})

	t.Run("custom values", func(t *testing.T) {
		p := New(WithChunkSize(500), WithOverlap(100))
		assert.Equal(t, 500, p.chunkSize)
		assert.Equal(t, 100, p.overlap)
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		assert.Less(t, p.overlap, p.chunkSize)
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		assert.Equal(t, DefaultChunkSize, p.chunkSize)
		assert.Equal(t, DefaultChunkOverlap, p.overlap)
	})
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}

func TestSplit_Empty(t *testing.T) {
	assert.Nil(t, New().Split(""))
	assert.Nil(t, New().Split(" \n\t "))
}

func TestSplit_SmallContent(t *testing.T) {
	chunks := New().Split("  The petition is admitted.  ")
	assert.Equal(t, []string{"The petition is admitted."}, chunks)
}

func TestSplit_SentenceBoundariesWithOverlap(t *testing.T) {
	p := New(WithChunkSize(60), WithOverlap(25))
	text := "The court heard the petition. Counsel sought time. Adjourned to Monday."

	chunks := p.Split(text)

	assert.Equal(t, []string{
		"The court heard the petition. Counsel sought time.",
		"Counsel sought time. Adjourned to Monday.",
	}, chunks)
}

func TestSplit_HardSplitsUnbrokenText(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))

	chunks := p.Split(strings.Repeat("x", 250))

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)
}

func TestSplit_RespectsSizeInCharacters(t *testing.T) {
	p := New()
	text := strings.Repeat("കോടതി ഉത്തരവ് പുറപ്പെടുവിച്ചു. ", 300)

	chunks := p.Split(text)

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d is not valid UTF-8", i)
		assert.LessOrEqual(t, utf8.RuneCountInString(c), DefaultChunkSize, "chunk %d too long", i)
		assert.Equal(t, strings.TrimSpace(c), c)
	}
}

func TestSplit_CoversEverySentence(t *testing.T) {
	p := New(WithChunkSize(120), WithOverlap(40))
	var sentences []string
	for i := 0; i < 40; i++ {
		sentences = append(sentences, "Hearing "+strings.Repeat("i", i%7+1)+" was recorded.")
	}

	chunks := p.Split(strings.Join(sentences, " "))

	joined := strings.Join(chunks, "\n")
	for _, s := range sentences {
		assert.Contains(t, joined, s)
	}
}

func TestSplit_ParagraphBreaks(t *testing.T) {
	p := New(WithChunkSize(20), WithOverlap(0))

	chunks := p.Split("ORDER\n\nPetition allowed")

	assert.Equal(t, []string{"ORDER", "Petition allowed"}, chunks)
}

func TestProcess(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))

	chunks := p.Process("id_1", strings.Repeat("word ", 100))

	require.Greater(t, len(chunks), 1)
	seen := make(map[string]bool)
	for i, c := range chunks {
		assert.Equal(t, "id_1", c.DocumentID)
		assert.Equal(t, i, c.Position)
		assert.False(t, seen[c.ID], "duplicate chunk ID %s", c.ID)
		seen[c.ID] = true
	}
}
