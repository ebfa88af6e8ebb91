package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Listing
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
	Edit   key.Binding
	Yank   key.Binding
	Cancel key.Binding

	// Delete confirmation
	ChoiceYes key.Binding
	ChoiceNo  key.Binding
	Yes       key.Binding
	No        key.Binding

	// Edit form
	NextField key.Binding
	PrevField key.Binding

	// Global
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings. Listing mode only binds
// control combinations so that every printable key reaches the search box.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑/ctrl+k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓/ctrl+j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "edit"),
		),
		Yank: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy path"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ChoiceYes: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h/←", "yes"),
		),
		ChoiceNo: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l/→", "no"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "delete"),
		),
		No: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "keep"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// isControl reports whether msg is a control combination. Unbound ones are
// swallowed in listing mode instead of reaching the search box. ctrl+h is
// left alone since some terminals send it for backspace.
func isControl(msg tea.KeyMsg) bool {
	s := msg.String()
	return strings.HasPrefix(s, "ctrl+") && s != "ctrl+h"
}
