package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y).
// Both may contain ANSI styling; cells of bg outside fg are preserved.
func PlaceOverlay(x, y int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	fgWidth := 0
	for _, l := range fgLines {
		if w := ansi.StringWidth(l); w > fgWidth {
			fgWidth = w
		}
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for i, fgLine := range fgLines {
		row := y + i
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		if w := ansi.StringWidth(fgLine); w < fgWidth {
			fgLine += strings.Repeat(" ", fgWidth-w)
		}

		right := ""
		if ansi.StringWidth(bgLine) > x+fgWidth {
			right = ansi.TruncateLeft(bgLine, x+fgWidth, "")
		}

		// Reset after each segment so styles don't bleed across the seams.
		bgLines[row] = left + "\x1b[0m" + fgLine + "\x1b[0m" + right
	}

	return strings.Join(bgLines, "\n")
}
