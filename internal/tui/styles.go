package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Count        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemMissing  lipgloss.Style
	Description  lipgloss.Style
	Path         lipgloss.Style
	Tree         lipgloss.Style
	Date         lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Message      lipgloss.Style
	Error        lipgloss.Style
	Modal        lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "ctrl+d")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "select", "delete")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	danger := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}  // missing paths, errors

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Count: lipgloss.NewStyle().
			Foreground(subtle),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		ItemMissing: lipgloss.NewStyle().
			Foreground(danger).
			PaddingLeft(1),

		Description: lipgloss.NewStyle().
			Foreground(subtle),

		Path: lipgloss.NewStyle().
			Foreground(subtle),

		Tree: lipgloss.NewStyle().
			Foreground(primary),

		Date: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Message: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Button: lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 2),

		ButtonActive: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")).
			Padding(0, 2),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
