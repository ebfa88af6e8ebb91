package tui

import (
	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/preview"
)

// Item is one row of the bookmark list: a bookmark plus what its path
// pointed at when the list was last refreshed.
type Item struct {
	Bookmark model.Bookmark
	Kind     preview.Kind
}

// Title returns a display title for the item.
func (i Item) Title() string {
	return i.Bookmark.DisplayName()
}

// Indicator returns the glyph shown before the name.
func (i Item) Indicator() string {
	switch i.Kind {
	case preview.Directory:
		return "▸"
	case preview.File:
		return "•"
	default:
		return "✗"
	}
}
