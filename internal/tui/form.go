package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/tui/layout"
)

// Edit form fields, in focus order.
const (
	fieldName = iota
	fieldPath
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Path", "Description"}

// EditForm edits the name, path and description of one bookmark.
type EditForm struct {
	target model.Bookmark
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

// NewEditForm creates a form prefilled from target with the name focused.
func NewEditForm(target model.Bookmark, cfg layout.InputConfig) EditForm {
	limits := [fieldCount]int{cfg.NameCharLimit, cfg.PathCharLimit, cfg.DescriptionCharLimit}
	values := [fieldCount]string{target.Name, target.Path, target.Description}

	f := EditForm{target: target}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldLabels[i]
		in.CharLimit = limits[i]
		in.Width = cfg.StandardWidth
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[fieldName].Focus()
	return f
}

// Target returns the bookmark being edited.
func (f EditForm) Target() model.Bookmark {
	return f.target
}

// Focused returns the index of the focused field.
func (f EditForm) Focused() int {
	return f.focus
}

// Value returns the current text of field i.
func (f EditForm) Value(i int) string {
	return f.inputs[i].Value()
}

// Err returns the validation message shown under the fields.
func (f EditForm) Err() string {
	return f.err
}

// withErr returns a copy showing msg.
func (f EditForm) withErr(msg string) EditForm {
	f.err = msg
	return f
}

// Cycle moves focus by delta fields, wrapping around.
func (f EditForm) Cycle(delta int) (EditForm, tea.Cmd) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f, f.inputs[f.focus].Focus()
}

// Update forwards msg to the focused field.
func (f EditForm) Update(msg tea.Msg) (EditForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Params returns only the fields that differ from the target.
func (f EditForm) Params() model.UpdateParams {
	var p model.UpdateParams
	if v := f.inputs[fieldName].Value(); v != f.target.Name {
		p.Name = &v
	}
	if v := f.inputs[fieldPath].Value(); v != f.target.Path {
		p.Path = &v
	}
	if v := f.inputs[fieldDescription].Value(); v != f.target.Description {
		p.Description = &v
	}
	return p
}
