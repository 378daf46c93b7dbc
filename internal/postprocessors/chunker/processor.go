// Package chunker provides a sentence-aware text chunking processor.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits text into overlapping chunks, breaking at sentence
// boundaries where it can. Lengths are counted in characters, not bytes.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Split returns the chunks of text. Each chunk is trimmed and at most
// chunkSize characters long; consecutive chunks share up to overlap
// characters of whole sentences.
func (p *Processor) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var (
		chunks    []string
		window    []string
		windowLen int
	)

	for _, unit := range p.units(text) {
		unitLen := utf8.RuneCountInString(unit)

		if windowLen+unitLen > p.chunkSize && len(window) > 0 {
			chunks = appendChunk(chunks, strings.Join(window, ""))

			// Keep trailing sentences as overlap, but only as many as fit
			// alongside the incoming unit.
			for len(window) > 0 && (windowLen > p.overlap || windowLen+unitLen > p.chunkSize) {
				windowLen -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}

		window = append(window, unit)
		windowLen += unitLen
	}

	if len(window) > 0 {
		chunks = appendChunk(chunks, strings.Join(window, ""))
	}

	return chunks
}

// Process splits text into chunks belonging to documentID.
func (p *Processor) Process(documentID, text string) []domain.Chunk {
	parts := p.Split(text)
	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Content:    part,
			Position:   i,
		})
	}
	return chunks
}

// units splits text into sentences (terminator plus trailing whitespace),
// then hard-splits any sentence longer than chunkSize. Concatenating the
// units reproduces text.
func (p *Processor) units(text string) []string {
	var units []string
	start := 0
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		boundary := false
		switch {
		case r == '.' || r == '!' || r == '?':
			boundary = i+1 < len(runes) && unicode.IsSpace(runes[i+1])
		case r == '\n':
			boundary = i+1 < len(runes) && runes[i+1] == '\n'
		}
		if !boundary {
			continue
		}
		// Absorb the whitespace run into this sentence.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		units = append(units, p.hardSplit(runes[start:j])...)
		start = j
		i = j - 1
	}
	if start < len(runes) {
		units = append(units, p.hardSplit(runes[start:])...)
	}

	return units
}

// hardSplit cuts an over-long sentence into pieces of at most chunkSize,
// preferring to cut after whitespace in the second half of a piece.
func (p *Processor) hardSplit(sentence []rune) []string {
	var pieces []string
	for len(sentence) > p.chunkSize {
		cut := p.chunkSize
		for k := p.chunkSize - 1; k > p.chunkSize/2; k-- {
			if unicode.IsSpace(sentence[k]) {
				cut = k + 1
				break
			}
		}
		pieces = append(pieces, string(sentence[:cut]))
		sentence = sentence[cut:]
	}
	if len(sentence) > 0 {
		pieces = append(pieces, string(sentence))
	}
	return pieces
}

func appendChunk(chunks []string, chunk string) []string {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return chunks
	}
	return append(chunks, chunk)
}
