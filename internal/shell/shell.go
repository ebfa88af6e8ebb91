// Package shell turns a chosen bookmark into a command for the calling
// shell and installs the wrapper function that evaluates it.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/preview"
)

// Marker precedes the installed function in rc files.
const Marker = "# pathmark"

// Function is the wrapper appended to rc files. Without arguments it runs
// the browser and evaluates the printed command; otherwise it passes the
// arguments through.
const Function = `pm() { if [ -z "$1" ]; then eval "$(pathmark command)"; else pathmark "$@"; fi }`

// Snippet is the exact text appended to an rc file.
const Snippet = "\n" + Marker + "\n" + Function + "\n"

// rcFiles are the files Install considers, relative to the home directory.
var rcFiles = []string{".bashrc", ".zshrc"}

// Quote wraps s in single quotes for POSIX shells.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Command returns the shell command that opens b: cd for a directory, the
// editor for a regular file. A path that no longer exists yields "".
func Command(b model.Bookmark, editor string) string {
	switch preview.KindOf(b.Path) {
	case preview.Directory:
		return "cd " + Quote(b.Path)
	case preview.File:
		return editor + " " + Quote(b.Path)
	}
	return ""
}

// InstallResult reports what Install did to one rc file.
type InstallResult struct {
	File  string
	Added bool // false when the function was already present
}

// Install appends Snippet to every existing rc file under home that does
// not contain it yet. Missing rc files are skipped, not created.
func Install(home string) ([]InstallResult, error) {
	var results []InstallResult

	for _, name := range rcFiles {
		path := filepath.Join(home, name)

		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return results, fmt.Errorf("reading %s: %w", path, err)
		}

		if strings.Contains(string(data), Marker) {
			results = append(results, InstallResult{File: path})
			continue
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
		if err != nil {
			return results, fmt.Errorf("opening %s: %w", path, err)
		}
		_, err = f.WriteString(Snippet)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return results, fmt.Errorf("writing %s: %w", path, err)
		}

		results = append(results, InstallResult{File: path, Added: true})
	}

	return results, nil
}
