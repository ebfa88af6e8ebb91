package layout

// CalculateModalWidth computes responsive modal width based on percentage of terminal width.
// Uses widthPercent of terminal width, clamped between MinWidth and MaxWidth.
func CalculateModalWidth(terminalWidth, widthPercent int, cfg ModalConfig) int {
	width := terminalWidth * widthPercent / 100

	// Apply min/max constraints
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateModalHeight computes modal height as a percentage of terminal height,
// at least MinHeight and never taller than the terminal.
func CalculateModalHeight(terminalHeight, heightPercent int, cfg ModalConfig) int {
	height := terminalHeight * heightPercent / 100
	if height < cfg.MinHeight {
		height = cfg.MinHeight
	}
	if height > terminalHeight {
		height = terminalHeight
	}
	if height < 1 {
		return 1
	}
	return height
}

// CenterOffset returns the offset that centers inner within outer.
func CenterOffset(outer, inner int) int {
	if inner >= outer {
		return 0
	}
	return (outer - inner) / 2
}
