package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/pathmark/internal/model"
)

// ConfirmResult is the outcome of a key press in the delete confirmation.
type ConfirmResult int

const (
	// ConfirmPending keeps the confirmation open.
	ConfirmPending ConfirmResult = iota
	// ConfirmDelete deletes the target and returns to listing.
	ConfirmDelete
	// ConfirmCancel returns to listing without deleting.
	ConfirmCancel
)

// DeleteConfirm is the Yes/No prompt shown before deleting a bookmark.
// No is highlighted initially.
type DeleteConfirm struct {
	Target model.Bookmark
	Yes    bool
}

// NewDeleteConfirm opens a confirmation for target with No highlighted.
func NewDeleteConfirm(target model.Bookmark) DeleteConfirm {
	return DeleteConfirm{Target: target}
}

// Handle applies one key press.
func (c DeleteConfirm) Handle(msg tea.KeyMsg, keys KeyMap) (DeleteConfirm, ConfirmResult) {
	switch {
	case key.Matches(msg, keys.ChoiceYes):
		c.Yes = true
	case key.Matches(msg, keys.ChoiceNo):
		c.Yes = false
	case key.Matches(msg, keys.Yes):
		return c, ConfirmDelete
	case key.Matches(msg, keys.No), key.Matches(msg, keys.Cancel):
		return c, ConfirmCancel
	case key.Matches(msg, keys.Select):
		if c.Yes {
			return c, ConfirmDelete
		}
		return c, ConfirmCancel
	}
	return c, ConfirmPending
}
