package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/search"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#D4A000", Dark: "#FFCC00"}

	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E0E0E0"})

	matchStyle = lipgloss.NewStyle().
			Foreground(accent).
			Underline(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
)

// Picker chooses one bookmark out of several quick-search hits.
type Picker struct {
	results   []search.Result
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given ranked results.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			p.cancelled = true
			return p, tea.Quit

		case "enter":
			if len(p.results) > 0 {
				p.selected = true
			} else {
				p.cancelled = true
			}
			return p, tea.Quit

		case "down", "j", "ctrl+j":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}

		case "up", "k", "ctrl+k":
			if p.cursor > 0 {
				p.cursor--
			}
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		b.WriteString(cursor + highlight(result, style) + "\n")
		b.WriteString("   " + pathStyle.Render(result.Bookmark.Path) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: choose  q/Esc: cancel"))

	return b.String()
}

// highlight renders the bookmark name with the fuzzy-matched bytes marked.
func highlight(r search.Result, base lipgloss.Style) string {
	name := r.Bookmark.Name
	if name == "" || len(r.MatchedIndexes) == 0 {
		return base.Render(r.Bookmark.DisplayName())
	}

	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, idx := range r.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, ch := range name {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(ch)))
		} else {
			b.WriteString(base.Render(string(ch)))
		}
	}
	return b.String()
}

// Choice returns the chosen bookmark, and false if the picker was cancelled.
func (p Picker) Choice() (model.Bookmark, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return model.Bookmark{}, false
	}
	return p.results[p.cursor].Bookmark, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
