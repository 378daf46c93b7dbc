// Package doccontent provides the reader showing the composed text of one case.
package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casedocs/internal/core/domain"
	"github.com/custodia-labs/casedocs/internal/core/ports/driving"
)

// ErrNoDocumentService is reported when the reader has no document service.
var ErrNoDocumentService = errors.New("document service not available")

// reservedLines is the height taken by the title, metadata and footer.
const reservedLines = 10

// View is the document reader.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService
	ctx             context.Context

	documentID   string
	document     *domain.Document
	lines        []string
	scrollOffset int
	width        int
	height       int
	err          error
	loading      bool
	notice       string
}

// NewView creates a reader backed by documentService.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load resets the reader and returns the command fetching documentID.
func (v *View) Load(documentID string) tea.Cmd {
	v.documentID = documentID
	v.document = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.notice = ""
	v.loading = true

	svc, ctx := v.documentService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentLoaded{Err: ErrNoDocumentService}
		}
		doc, err := svc.Get(ctx, documentID)
		return messages.DocumentLoaded{Document: doc, Err: err}
	}
}

// Update handles messages for the reader.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.document = msg.Document
			v.wrapContent()
		}
		return v, nil

	case messages.DocumentOpened:
		if msg.Err != nil {
			v.notice = "Open: " + msg.Err.Error()
		} else {
			v.notice = "Opened in browser"
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case keymap.Matches(keyStr, v.keymap.PageUp):
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case keymap.Matches(keyStr, v.keymap.PageDown):
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case keyStr == "home" || keyStr == "g":
		v.scrollOffset = 0
	case keyStr == "end" || keyStr == "G":
		v.scrollOffset = v.maxScrollOffset()
	case keymap.Matches(keyStr, v.keymap.Ask):
		if v.documentID != "" {
			id := v.documentID
			return v, func() tea.Msg { return messages.ChatRequested{DocumentID: id} }
		}
	case keymap.Matches(keyStr, v.keymap.Open):
		return v, v.open()
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
	}
	return v, nil
}

func (v *View) open() tea.Cmd {
	if v.documentService == nil || v.documentID == "" {
		return nil
	}
	svc, ctx, id := v.documentService, v.ctx, v.documentID
	return func() tea.Msg {
		return messages.DocumentOpened{DocumentID: id, Err: svc.Open(ctx, id)}
	}
}

// wrapContent renders the document sections as display lines.
// Section separators become horizontal rules.
func (v *View) wrapContent() {
	v.lines = nil
	if v.document == nil {
		return
	}

	width := max(v.width-4, 20)
	rule := strings.Repeat("─", min(width, 60))
	for i, section := range v.document.Sections() {
		if i > 0 {
			v.lines = append(v.lines, "", rule, "")
		}
		for _, line := range strings.Split(section, "\n") {
			v.lines = append(v.lines, wrap(line, width)...)
		}
	}
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// wrap splits line into pieces of at most width runes.
func wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}
	var out []string
	for len(runes) > width {
		out = append(out, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func (v *View) visibleLines() int {
	return max(v.height-reservedLines, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the reader.
func (v *View) View() string {
	var b strings.Builder

	title := v.documentID
	if v.document != nil {
		title = v.document.Title()
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.document != nil {
		meta := v.document.Metadata
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s | %s | CNR %s",
			v.document.ID, meta[domain.MetaCaseType], meta[domain.MetaCNRNumber])))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("interim orders: %s  judgement: %s",
			meta[domain.MetaInterimStatus], meta[domain.MetaJudgementStatus])))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n")
	default:
		visible := v.visibleLines()
		end := min(v.scrollOffset+visible, len(v.lines))
		for _, line := range v.lines[v.scrollOffset:end] {
			b.WriteString(v.styles.Normal.Render(line))
			b.WriteString("\n")
		}
		if len(v.lines) > visible {
			percentage := 0
			if m := v.maxScrollOffset(); m > 0 {
				percentage = v.scrollOffset * 100 / m
			}
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
				percentage, v.scrollOffset+1, end, len(v.lines))))
			b.WriteString("\n")
		}
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [a] ask  [o] open  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions and rewraps the text.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
}

func (v *View) DocumentID() string { return v.documentID }

func (v *View) Document() *domain.Document { return v.document }

func (v *View) Lines() []string { return v.lines }

func (v *View) ScrollOffset() int { return v.scrollOffset }

func (v *View) Err() error { return v.err }

func (v *View) Loading() bool { return v.loading }

func (v *View) Notice() string { return v.notice }
