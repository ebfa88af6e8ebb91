package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/nikbrunner/pathmark/internal/preview"
	"github.com/nikbrunner/pathmark/internal/tui/layout"
)

// Messages shown in place of the preview tree.
const (
	msgNoSelection     = "No bookmark selected"
	msgMissing         = "Path does not exist"
	msgFileUnsupported = "File preview not yet supported"
	msgUnreadable      = "Cannot read directory"
	msgDeletePrompt    = "Are you sure you want to delete bookmark? (y/N)"
)

// renderView draws the full frame: header, search box, list and preview
// panes, help bar, and the modal of the active sub-state on top.
func (a App) renderView() string {
	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	paneWidth := layout.CalculatePaneWidth(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderListPane(paneWidth, paneHeight),
		a.renderPreviewPane(paneWidth, paneHeight),
	)

	// Two bordered panes are 2*(w+2) wide; the search box border takes 2.
	searchBox := a.renderSearchBox(2*paneWidth + 2)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), searchBox, columns, a.renderHelpBar(2*paneWidth+4)),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	frame := lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)

	if modal := a.renderModal(); modal != "" {
		x := layout.CenterOffset(a.width, lipgloss.Width(modal))
		y := layout.CenterOffset(a.height, lipgloss.Height(modal))
		frame = layout.PlaceOverlay(x, y, modal, frame)
	}
	return frame
}

// renderHeader renders the title with match counts and the status message.
func (a App) renderHeader() string {
	header := a.styles.Title.Render("pathmark") + " " +
		a.styles.Count.Render(fmt.Sprintf("%d/%d", len(a.items), len(a.all)))
	if a.message != "" {
		header += "  " + a.styles.Message.Render(a.message)
	}
	return header
}

func (a App) renderSearchBox(width int) string {
	// Copy so the width tweak never leaks into state.
	input := a.search
	input.Width = width - 12
	if input.Width < 1 {
		input.Width = 1
	}

	style := a.styles.PaneActive
	if _, ok := a.state.(listingState); !ok {
		style = a.styles.Pane
	}
	return style.Width(width).Render(a.styles.Title.Render("Search ") + input.View())
}

func (a App) renderListPane(width, height int) string {
	var content strings.Builder

	visibleHeight := layout.CalculateVisibleHeight(height, 0)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(a.items) == 0 {
		if len(a.all) == 0 {
			content.WriteString(a.styles.Empty.Render("(no bookmarks)"))
		} else {
			content.WriteString(a.styles.Empty.Render("(no matches)"))
		}
	} else {
		selected, _ := a.SelectedIndex()
		// Calculate viewport offset to keep the selection visible
		offset := layout.CalculateViewportOffset(selected, len(a.items), visibleHeight)

		for i := offset; i < len(a.items) && i < offset+visibleHeight; i++ {
			content.WriteString(a.renderItem(a.items[i], i == selected, itemWidth) + "\n")
		}
	}

	return a.styles.PaneActive.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderItem renders one row: selection marker, kind glyph, the name padded
// to the name column, then as much of the description as fits.
func (a App) renderItem(item Item, isCursor bool, maxWidth int) string {
	marker := "  "
	if isCursor {
		marker = "> "
	}
	prefix := marker + item.Indicator() + " "
	prefixWidth := layout.VisibleLength(prefix)

	nameWidth := a.nameWidth
	if avail := maxWidth - prefixWidth; nameWidth > avail {
		nameWidth = avail
	}
	line := prefix + layout.PadRight(item.Title(), nameWidth, a.layoutConfig.Text)

	if descWidth := maxWidth - prefixWidth - nameWidth - 1; descWidth > 0 && item.Bookmark.Description != "" {
		desc, _ := layout.TruncateText(item.Bookmark.Description, descWidth, a.layoutConfig.Text)
		line += " " + desc
	}

	if isCursor {
		// Pad to fill width for highlight
		if gap := maxWidth - layout.VisibleLength(line); gap > 0 {
			line += strings.Repeat(" ", gap)
		}
		return a.styles.ItemSelected.Render(line)
	}
	if item.Kind == preview.Missing {
		return a.styles.ItemMissing.Render(line)
	}
	return a.styles.Item.Render(line)
}

func (a App) renderPreviewPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	text := a.layoutConfig.Text

	b, ok := a.Selected()
	if !ok {
		content.WriteString(a.styles.Empty.Render(msgNoSelection))
		return a.styles.Pane.Width(width).Height(height).Render(content.String())
	}

	p := a.preview
	name, _ := layout.TruncateText(b.DisplayName(), itemWidth, text)
	content.WriteString(a.styles.Title.Render(name) + "\n")
	content.WriteString(a.styles.Path.Render(layout.TruncatePathFromLeft(b.Path, itemWidth, text)) + "\n")

	meta := p.Kind.String()
	if !p.ModTime.IsZero() {
		meta += " · modified " + humanize.Time(p.ModTime)
	}
	if p.Kind == preview.File {
		meta += " · " + humanize.Bytes(uint64(p.Size))
	}
	content.WriteString(a.styles.Date.Render(meta) + "\n")

	visited := "never visited"
	if b.VisitedAt != nil {
		visited = "visited " + humanize.Time(*b.VisitedAt)
	}
	content.WriteString(a.styles.Date.Render(visited) + "\n")

	desc, _ := layout.TruncateText(b.Description, itemWidth, text)
	content.WriteString(a.styles.Description.Render(desc) + "\n\n")

	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.PreviewHeaderLines)

	switch {
	case p.Kind == preview.Missing:
		content.WriteString(a.styles.Error.Render(msgMissing))
	case p.Kind == preview.File:
		content.WriteString(a.styles.Empty.Render(msgFileUnsupported))
	case p.Err != nil:
		content.WriteString(a.styles.Error.Render(msgUnreadable))
	default:
		content.WriteString(a.renderTree(p, itemWidth, visibleHeight))
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderTree renders a directory listing as a one-level tree, rooted at the
// directory name, within maxLines lines.
func (a App) renderTree(p preview.Preview, maxWidth, maxLines int) string {
	lines := []string{filepath.Base(p.Path) + "/"}

	if len(p.Entries) == 0 {
		lines = append(lines, a.styles.Empty.Render("(empty directory)"))
		return strings.Join(lines, "\n")
	}

	shown := len(p.Entries)
	if shown > maxLines-1 {
		// Leave a line for the "more" marker.
		shown = maxLines - 2
		if shown < 0 {
			shown = 0
		}
	}

	for i := 0; i < shown; i++ {
		e := p.Entries[i]
		branch := "├─ "
		if i == len(p.Entries)-1 {
			branch = "└─ "
		}
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		line, _ := layout.TruncateText(branch+name, maxWidth, a.layoutConfig.Text)
		lines = append(lines, a.styles.Tree.Render(line))
	}

	if rest := len(p.Entries) - shown; rest > 0 {
		lines = append(lines, a.styles.Empty.Render(fmt.Sprintf("└─ … %d more", rest)))
	}

	return strings.Join(lines, "\n")
}

func (a App) renderHelpBar(width int) string {
	return a.styles.Help.Width(width).Render(a.renderHints(a.getContextualHints()))
}

// renderModal renders the centered dialog of the active sub-state, or ""
// when no modal is open.
func (a App) renderModal() string {
	switch s := a.state.(type) {
	case deletingState:
		return a.renderDeleteModal(s.confirm)
	case updatingState:
		return a.renderEditModal(s.form)
	}
	return ""
}

func (a App) renderDeleteModal(c DeleteConfirm) string {
	cfg := a.layoutConfig.Modal
	width := layout.CalculateModalWidth(a.width, cfg.DeleteWidthPercent, cfg)
	height := layout.CalculateModalHeight(a.height, cfg.DeleteHeightPercent, cfg)
	// Modal padding (2 each side) plus border (1 each side).
	inner := width - 6

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Delete Bookmark") + "\n\n")
	content.WriteString(msgDeletePrompt + "\n\n")

	name, _ := layout.TruncateText(c.Target.DisplayName(), inner, a.layoutConfig.Text)
	content.WriteString(name + "\n")
	content.WriteString(a.styles.Path.Render(layout.TruncatePathFromLeft(c.Target.Path, inner, a.layoutConfig.Text)) + "\n\n")

	yes, no := a.styles.Button, a.styles.ButtonActive
	if c.Yes {
		yes, no = a.styles.ButtonActive, a.styles.Button
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Yes"), "  ", no.Render("No"))
	content.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, buttons))

	return a.styles.Modal.
		Width(width - 2).
		Height(height - 2).
		Render(content.String())
}

func (a App) renderEditModal(f EditForm) string {
	cfg := a.layoutConfig.Modal
	width := layout.CalculateModalWidth(a.width, cfg.EditWidthPercent, cfg)
	inner := width - 6

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Edit Bookmark") + "\n\n")

	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i] + ":"
		if i == f.Focused() {
			label = a.styles.Title.Render(label)
		}
		input := f.inputs[i]
		input.Width = inner - 1
		if input.Width < 1 {
			input.Width = 1
		}
		content.WriteString(label + "\n" + input.View() + "\n\n")
	}

	if f.Err() != "" {
		msg, _ := layout.TruncateText(f.Err(), inner, a.layoutConfig.Text)
		content.WriteString(a.styles.Error.Render(msg) + "\n\n")
	}

	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "Tab", Desc: "next"},
		{Key: "Enter", Desc: "save"},
		{Key: "Esc", Desc: "cancel"},
	}))

	return a.styles.Modal.
		Width(width - 2).
		Render(content.String())
}
