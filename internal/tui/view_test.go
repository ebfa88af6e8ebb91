package tui_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/tui"
	"github.com/nikbrunner/pathmark/internal/tui/layout"
)

// testStore creates a directory, a file and a missing path under a temp dir.
func testStore(t *testing.T) *sliceStore {
	t.Helper()
	dir := t.TempDir()

	project := filepath.Join(dir, "project")
	for _, sub := range []string{"cmd", ".git"} {
		if err := os.MkdirAll(filepath.Join(project, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"go.mod", "main.go"} {
		if err := os.WriteFile(filepath.Join(project, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	return &sliceStore{bookmarks: []model.Bookmark{
		{ID: 1, Name: "project", Path: project, Description: "main work"},
		{ID: 2, Name: "notes", Path: notes},
		{ID: 3, Name: "gone", Path: filepath.Join(dir, "gone")},
	}}
}

// createTestApp creates a test app with fixed dimensions.
func createTestApp(t *testing.T, width, height int) tui.App {
	t.Helper()
	cfg := layout.DefaultConfig()
	app := tui.NewApp(tui.AppParams{
		Store:        testStore(t),
		LayoutConfig: &cfg,
	})
	return app.WithDimensions(width, height)
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q\n%s", w, output)
		}
	}
}

func TestView_Listing(t *testing.T) {
	app := createTestApp(t, 80, 24)
	output := layout.StripANSI(app.View())

	assertContains(t, output,
		"pathmark 3/3",
		"Search",
		"▸ project",
		"main work",
		"• notes",
		"✗ gone",
		"directory · modified",
		"never visited",
		"project/",
		"├─ cmd/",
		"├─ go.mod",
		"└─ main.go",
		"Esc:quit",
	)
	if strings.Contains(output, ".git") {
		t.Error("hidden entries should not be listed")
	}
}

func TestView_FitsTerminal(t *testing.T) {
	for _, size := range [][2]int{{80, 24}, {120, 30}} {
		app := createTestApp(t, size[0], size[1])
		for i, line := range strings.Split(app.View(), "\n") {
			if w := ansi.StringWidth(line); w > size[0] {
				t.Errorf("%dx%d: line %d is %d wide", size[0], size[1], i, w)
			}
		}
	}
}

func TestView_FilePreview(t *testing.T) {
	app := createTestApp(t, 80, 24)
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown})
	output := layout.StripANSI(app.View())

	assertContains(t, output, "File preview not yet supported", "5 B")
}

func TestView_MissingPreview(t *testing.T) {
	app := createTestApp(t, 80, 24)
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	output := layout.StripANSI(app.View())

	assertContains(t, output, "Path does not exist", "missing")
}

func TestView_EmptyStore(t *testing.T) {
	app := tui.NewApp(tui.AppParams{Store: &sliceStore{}}).WithDimensions(80, 24)
	output := layout.StripANSI(app.View())

	assertContains(t, output, "pathmark 0/0", "(no bookmarks)", "No bookmark selected")
}

func TestView_NoMatches(t *testing.T) {
	app := createTestApp(t, 80, 24)
	app, _ = press(app, runes("zzz"))
	output := layout.StripANSI(app.View())

	assertContains(t, output, "pathmark 0/3", "(no matches)", "zzz")
}

func TestView_Message(t *testing.T) {
	app := createTestApp(t, 80, 24)
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyCtrlD}, runes("y"))
	output := layout.StripANSI(app.View())

	assertContains(t, output, "pathmark 2/2", "Deleted notes")
}

func TestView_DeleteModal(t *testing.T) {
	app := createTestApp(t, 200, 40)
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyCtrlD})
	output := layout.StripANSI(app.View())

	assertContains(t, output,
		"Delete Bookmark",
		"Are you sure you want to delete bookmark? (y/N)",
		"Yes",
		"No",
		"y:yes",
		"Esc:cancel",
	)
}

func TestView_EditModal(t *testing.T) {
	app := createTestApp(t, 200, 40)
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyCtrlE})
	output := layout.StripANSI(app.View())

	assertContains(t, output,
		"Edit Bookmark",
		"Name:",
		"Path:",
		"Description:",
		"main work",
		"Enter save",
	)
}

func TestView_EditModalShowsError(t *testing.T) {
	app := createTestApp(t, 200, 40)
	app, _ = press(app,
		tea.KeyMsg{Type: tea.KeyCtrlE},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyCtrlU},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	output := layout.StripANSI(app.View())

	assertContains(t, output, "bookmark path is empty")
}

func TestView_TinyTerminalDoesNotPanic(t *testing.T) {
	for width := 1; width <= 10; width++ {
		app := createTestApp(t, width, 3)
		_ = app.View()

		app, _ = press(app, tea.KeyMsg{Type: tea.KeyCtrlD})
		_ = app.View()

		// notes has no description, so the form renders a placeholder.
		app, _ = press(app, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyCtrlE})
		_ = app.View()
	}
}
