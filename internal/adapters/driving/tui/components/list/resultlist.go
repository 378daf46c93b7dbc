// Package list provides the navigable list of case search results.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/casedocs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

// linesPerResult is the height of one rendered result.
const linesPerResult = 3

// ResultList displays ranked cases with their court document counts.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No matching cases")
	}

	lines := make([]string, 0, len(r.results)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Cases (%d)", len(r.results))), "")

	visible := (r.height - 4) / linesPerResult
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := truncate(result.Document.Title(), r.width-20)
	score := fmt.Sprintf("%.3f", result.Score)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, title, score))
	} else {
		titleLine = r.styles.Normal.Render(indicator+title+"  ") + r.styles.Muted.Render(score)
	}

	meta := result.Document.Metadata
	detail := fmt.Sprintf("    %s | %s | CNR %s",
		result.Document.ID, meta[domain.MetaCaseType], meta[domain.MetaCNRNumber])

	judgement := "no judgement"
	if result.JudgementURL != "" {
		judgement = "judgement"
	}
	docs := fmt.Sprintf("    %d interim orders, %s", len(result.InterimOrderURLs), judgement)

	return titleLine + "\n" +
		r.styles.Subtitle.Render(truncate(detail, r.width-2)) + "\n" +
		r.styles.Muted.Render(docs)
}

// truncate shortens s to limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetResults replaces the results and selects the first.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

func (r *ResultList) Results() []domain.SearchResult { return r.results }

func (r *ResultList) Selected() int { return r.selected }

// SelectedResult returns the highlighted result, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

func (r *ResultList) Count() int { return len(r.results) }
