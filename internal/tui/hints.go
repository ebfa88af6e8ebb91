package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "ctrl+d", "Enter")
	Desc string // Short description (e.g., "delete", "select")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter save  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (up/down, field focus)
	Edit   []Hint // Edit hints (delete, edit, copy)
	Action []Hint // Action hints (Enter, y/n)
	System []Hint // System hints (Esc, ctrl+c)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.state.(type) {
	case listingState:
		return a.getListingHints()
	case deletingState:
		return a.getDeletingHints()
	case updatingState:
		return a.getUpdatingHints()
	default:
		return HintSet{}
	}
}

func (a App) getListingHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "↑↓/ctrl+jk", Desc: "move"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "select"},
		},
		Edit: []Hint{
			{Key: "ctrl+d", Desc: "delete"},
			{Key: "ctrl+e", Desc: "edit"},
			{Key: "ctrl+y", Desc: "copy"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "quit"},
		},
	}
}

func (a App) getDeletingHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "h/l", Desc: "choose"},
		},
		Action: []Hint{
			{Key: "y", Desc: "yes"},
			{Key: "n", Desc: "no"},
			{Key: "Enter", Desc: "confirm"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}

func (a App) getUpdatingHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "Tab", Desc: "next field"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "save"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}
