package tui

// Mode is the browser's top-level state.
type Mode int

const (
	// ModeListing is the default: search box live, list navigation active.
	ModeListing Mode = iota
	// ModeDeleting shows the delete confirmation; it owns all input.
	ModeDeleting
	// ModeUpdating shows the edit form; it owns all input.
	ModeUpdating
	// ModeDone means a bookmark was chosen; the program exits.
	ModeDone
	// ModeExited means the user aborted; the program exits with no choice.
	ModeExited
)

func (m Mode) String() string {
	switch m {
	case ModeListing:
		return "listing"
	case ModeDeleting:
		return "deleting"
	case ModeUpdating:
		return "updating"
	case ModeDone:
		return "done"
	case ModeExited:
		return "exited"
	default:
		return "unknown"
	}
}

// state is the tagged union behind Mode. Sub-state data lives only in the
// variant that uses it, so a confirmation cannot outlive ModeDeleting.
type state interface {
	mode() Mode
}

type listingState struct{}

type deletingState struct {
	confirm DeleteConfirm
}

type updatingState struct {
	form EditForm
}

type doneState struct{}

type exitedState struct{}

func (listingState) mode() Mode  { return ModeListing }
func (deletingState) mode() Mode { return ModeDeleting }
func (updatingState) mode() Mode { return ModeUpdating }
func (doneState) mode() Mode     { return ModeDone }
func (exitedState) mode() Mode   { return ModeExited }

// terminal reports whether the state ends the program.
func terminal(s state) bool {
	switch s.(type) {
	case doneState, exitedState:
		return true
	}
	return false
}
