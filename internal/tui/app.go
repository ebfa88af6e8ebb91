package tui

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/preview"
	"github.com/nikbrunner/pathmark/internal/search"
	"github.com/nikbrunner/pathmark/internal/storage"
	"github.com/nikbrunner/pathmark/internal/tui/layout"
)

// ErrUnpersisted is returned when deletion is requested for a bookmark that
// never came from the store. Reaching it is a bug.
var ErrUnpersisted = errors.New("bookmark has no id")

// DefaultRefreshInterval is how often the store is re-read without input.
const DefaultRefreshInterval = 250 * time.Millisecond

// Store is the part of the bookmark store the browser needs.
type Store interface {
	List() ([]model.Bookmark, error)
	Update(b model.Bookmark) error
	Delete(id int64) error
}

// tickMsg drives the periodic refresh when no input arrives.
type tickMsg time.Time

// App is the main bubbletea model for the bookmark browser.
type App struct {
	store        Store
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	clipboard    func(string) error

	refreshInterval time.Duration
	nameWidth       int
	showHidden      bool

	state     state
	search    textinput.Model
	selection Selection

	// Derived on every settle; the renderer only reads these.
	all     []model.Bookmark
	items   []Item
	preview preview.Preview

	message string
	err     error

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store           Store
	Keys            *KeyMap              // optional, uses default if nil
	Styles          *Styles              // optional, uses default if nil
	LayoutConfig    *layout.LayoutConfig // optional, uses default if nil
	Clipboard       func(string) error   // optional, uses the system clipboard if nil
	RefreshInterval time.Duration        // optional, DefaultRefreshInterval if zero
	NameWidth       int                  // optional, 20 if zero
	ShowHidden      bool
	Query           string // initial search text
}

// NewApp creates a new App and performs the first store read.
// A failed read is reported by Err and ends the program on Init.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	interval := params.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	nameWidth := params.NameWidth
	if nameWidth <= 0 {
		nameWidth = 20
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search..."
	input.CharLimit = layoutConfig.Input.SearchCharLimit
	input.SetValue(params.Query)
	input.Focus()

	app := App{
		store:           params.Store,
		keys:            keys,
		styles:          styles,
		layoutConfig:    layoutConfig,
		clipboard:       copyFn,
		refreshInterval: interval,
		nameWidth:       nameWidth,
		showHidden:      params.ShowHidden,
		state:           listingState{},
		search:          input,
		selection:       NewSelection(),
		width:           80,
		height:          24,
	}

	if err := app.settle(); err != nil {
		app.err = err
	}
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.err != nil {
		return tea.Quit
	}
	return tea.Batch(textinput.Blink, a.tick())
}

func (a App) tick() tea.Cmd {
	return tea.Tick(a.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model. Every message, including the periodic tick,
// is followed by a settle so the list never shows a stale record.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tickMsg:
		cmds = append(cmds, a.tick())

	case tea.KeyMsg:
		cmd, err := a.handleKey(msg)
		if err != nil {
			return a.fail(err)
		}
		cmds = append(cmds, cmd)

	default:
		// Cursor blink and other widget messages.
		var cmd tea.Cmd
		if s, ok := a.state.(updatingState); ok {
			s.form, cmd = s.form.Update(msg)
			a.state = s
		} else {
			a.search, cmd = a.search.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	if _, ok := a.state.(exitedState); ok {
		log.Printf("exited")
		return a, tea.Quit
	}

	if err := a.settle(); err != nil {
		return a.fail(err)
	}

	if _, ok := a.state.(doneState); ok {
		b, ok := a.Selected()
		log.Printf("done: selected=%v path=%q", ok, b.Path)
		return a, tea.Quit
	}

	return a, tea.Batch(cmds...)
}

func (a App) fail(err error) (tea.Model, tea.Cmd) {
	log.Printf("fatal: %v", err)
	a.err = err
	a.state = exitedState{}
	return a, tea.Quit
}

// settle re-derives everything that depends on the store, in order:
// re-read, filter, reclamp, then the selected row's preview.
func (a *App) settle() error {
	all, err := a.store.List()
	if err != nil {
		return fmt.Errorf("listing bookmarks: %w", err)
	}
	if a.all != nil && len(all) != len(a.all) {
		log.Printf("refresh: %d -> %d bookmarks", len(a.all), len(all))
	}
	a.all = all

	filtered := search.Filter(all, a.search.Value())
	a.selection.Reclamp(len(filtered))

	a.items = make([]Item, len(filtered))
	for i, b := range filtered {
		a.items[i] = Item{Bookmark: b, Kind: preview.KindOf(b.Path)}
	}

	a.preview = preview.Preview{}
	if b, ok := a.Selected(); ok {
		a.preview = preview.Load(b.Path, a.showHidden)
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, error) {
	if key.Matches(msg, a.keys.Quit) {
		a.state = exitedState{}
		return nil, nil
	}

	switch s := a.state.(type) {
	case listingState:
		return a.handleListingKey(msg), nil
	case deletingState:
		return nil, a.handleDeletingKey(s, msg)
	case updatingState:
		return a.handleUpdatingKey(s, msg)
	}
	return nil, nil
}

func (a *App) handleListingKey(msg tea.KeyMsg) tea.Cmd {
	a.message = ""

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.state = exitedState{}

	case key.Matches(msg, a.keys.Select):
		a.state = doneState{}

	case key.Matches(msg, a.keys.Up):
		a.selection.Decrement()

	case key.Matches(msg, a.keys.Down):
		a.selection.Increment(len(a.items))

	case key.Matches(msg, a.keys.Delete):
		if b, ok := a.Selected(); ok {
			log.Printf("confirm delete %d", b.ID)
			a.state = deletingState{confirm: NewDeleteConfirm(b)}
		}

	case key.Matches(msg, a.keys.Edit):
		if b, ok := a.Selected(); ok {
			form := NewEditForm(b, a.layoutConfig.Input)
			a.state = updatingState{form: form}
			return textinput.Blink
		}

	case key.Matches(msg, a.keys.Yank):
		if b, ok := a.Selected(); ok {
			if err := a.clipboard(b.Path); err != nil {
				a.message = "Copy failed: " + err.Error()
			} else {
				a.message = "Copied " + b.Path
			}
		}

	case isControl(msg):
		// Unbound control combinations are reserved.

	default:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return cmd
	}

	return nil
}

func (a *App) handleDeletingKey(s deletingState, msg tea.KeyMsg) error {
	confirm, result := s.confirm.Handle(msg, a.keys)

	switch result {
	case ConfirmPending:
		a.state = deletingState{confirm: confirm}
	case ConfirmCancel:
		a.state = listingState{}
	case ConfirmDelete:
		a.state = listingState{}
		return a.deleteBookmark(confirm.Target)
	}
	return nil
}

func (a *App) deleteBookmark(b model.Bookmark) error {
	if !b.Persisted() {
		return fmt.Errorf("deleting %q: %w", b.Path, ErrUnpersisted)
	}

	log.Printf("delete %d %s", b.ID, b.Path)
	err := a.store.Delete(b.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Already gone; the next settle drops the row.
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting %q: %w", b.Path, err)
	}

	a.message = "Deleted " + b.DisplayName()
	return nil
}

func (a *App) handleUpdatingKey(s updatingState, msg tea.KeyMsg) (tea.Cmd, error) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.state = listingState{}
		return nil, nil

	case key.Matches(msg, a.keys.Select):
		return nil, a.saveForm(s.form)

	case key.Matches(msg, a.keys.NextField):
		s.form, cmd = s.form.Cycle(1)

	case key.Matches(msg, a.keys.PrevField):
		s.form, cmd = s.form.Cycle(-1)

	default:
		s.form, cmd = s.form.Update(msg)
	}

	a.state = s
	return cmd, nil
}

// saveForm writes the form back. Validation problems keep the form open
// with a message; store failures are fatal.
func (a *App) saveForm(form EditForm) error {
	params := form.Params()
	if params.Empty() {
		a.state = listingState{}
		return nil
	}

	updated, err := params.Apply(form.Target())
	if err != nil {
		a.state = updatingState{form: form.withErr(err.Error())}
		return nil
	}

	log.Printf("update %d", updated.ID)
	err = a.store.Update(updated)
	switch {
	case errors.Is(err, storage.ErrDuplicatePath):
		a.state = updatingState{form: form.withErr("another bookmark already uses " + updated.Path)}
		return nil
	case errors.Is(err, storage.ErrNotFound):
		a.state = listingState{}
		a.message = "Bookmark no longer exists"
		return nil
	case err != nil:
		return fmt.Errorf("updating %q: %w", updated.Path, err)
	}

	a.state = listingState{}
	a.message = "Saved " + updated.DisplayName()
	return nil
}

// Mode returns the current top-level state.
func (a App) Mode() Mode {
	return a.state.mode()
}

// Err returns the fatal error that ended the program, if any.
func (a App) Err() error {
	return a.err
}

// Message returns the transient status line text.
func (a App) Message() string {
	return a.message
}

// Query returns the current search text.
func (a App) Query() string {
	return a.search.Value()
}

// Items returns the filtered rows.
func (a App) Items() []Item {
	return a.items
}

// Total returns the number of bookmarks in the store at the last refresh.
func (a App) Total() int {
	return len(a.all)
}

// SelectedIndex returns the selected row, and false if there is none.
func (a App) SelectedIndex() (int, bool) {
	idx, ok := a.selection.Index()
	if !ok || idx >= len(a.items) {
		return -1, false
	}
	return idx, true
}

// Selected returns the bookmark under the selection.
func (a App) Selected() (model.Bookmark, bool) {
	idx, ok := a.SelectedIndex()
	if !ok {
		return model.Bookmark{}, false
	}
	return a.items[idx].Bookmark, true
}

// Choice returns the chosen bookmark once the browser is done. It reports
// false after an abort, or when Enter was pressed on an empty list.
func (a App) Choice() (model.Bookmark, bool) {
	if _, ok := a.state.(doneState); !ok {
		return model.Bookmark{}, false
	}
	return a.Selected()
}

// Confirm returns the open delete confirmation.
func (a App) Confirm() (DeleteConfirm, bool) {
	s, ok := a.state.(deletingState)
	return s.confirm, ok
}

// Form returns the open edit form.
func (a App) Form() (EditForm, bool) {
	s, ok := a.state.(updatingState)
	return s.form, ok
}

// Preview returns the preview of the selected row.
func (a App) Preview() preview.Preview {
	return a.preview
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// View implements tea.Model.
func (a App) View() string {
	if terminal(a.state) {
		return ""
	}
	return a.renderView()
}
