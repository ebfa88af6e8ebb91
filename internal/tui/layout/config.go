package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + title (1) + search box (3) + pane borders (2) + help bar (3) = 10
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// TwoPaneWidthOffset is subtracted before dividing by 2.
	// Accounts for app padding and the borders of both panes.
	TwoPaneWidthOffset int

	// MinPaneWidth is the minimum width for each pane.
	MinPaneWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// PreviewHeaderLines is the number of detail lines above the directory tree:
	// name, path, kind/modified, visited, description, blank separator.
	PreviewHeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DeleteWidthPercent is the confirmation modal width as percentage of terminal width.
	DeleteWidthPercent int

	// DeleteHeightPercent is the confirmation modal height as percentage of terminal height.
	DeleteHeightPercent int

	// EditWidthPercent is used for the edit form, which needs more room.
	EditWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// MinHeight is the minimum modal height in lines, borders included.
	MinHeight int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	NameCharLimit        int
	PathCharLimit        int
	DescriptionCharLimit int
	SearchCharLimit      int

	// Display widths
	StandardWidth int // Used for the edit form fields
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:    10, // app padding (1) + title (1) + search (3) + pane borders (2) + help bar (3)
			MinHeight:          5,
			TwoPaneWidthOffset: 8,
			MinPaneWidth:       20,
			ContentPadding:     4,
			PreviewHeaderLines: 6,
		},
		Modal: ModalConfig{
			DeleteWidthPercent:  40,
			DeleteHeightPercent: 20,
			EditWidthPercent:    60,
			MinWidth:            40,
			MaxWidth:            80,
			MinHeight:           7,
		},
		Input: InputConfig{
			NameCharLimit:        100,
			PathCharLimit:        4096,
			DescriptionCharLimit: 200,
			SearchCharLimit:      100,
			StandardWidth:        40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
