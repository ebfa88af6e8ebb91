package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the visible cell width of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}

	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}

	// Need space for ellipsis
	if maxWidth <= ansi.StringWidth(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// PadRight truncates text to width and pads it with spaces to exactly width cells.
func PadRight(text string, width int, cfg TextConfig) string {
	text, _ = TruncateText(text, width, cfg)
	if gap := width - ansi.StringWidth(text); gap > 0 {
		text += strings.Repeat(" ", gap)
	}
	return text
}

// TruncatePathFromLeft keeps the end of a path, which is the informative part.
// Example: TruncatePathFromLeft("/home/nik/src/pathmark", 14, cfg) -> "...rc/pathmark"
func TruncatePathFromLeft(path string, maxWidth int, cfg TextConfig) string {
	width := ansi.StringWidth(path)
	if width <= maxWidth {
		return path
	}
	ellipsisWidth := ansi.StringWidth(cfg.Ellipsis)
	if maxWidth <= ellipsisWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, "")
	}
	return cfg.Ellipsis + ansi.TruncateLeft(path, width-(maxWidth-ellipsisWidth), "")
}
