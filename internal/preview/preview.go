package preview

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Kind classifies what a bookmarked path currently points at.
type Kind int

const (
	Missing Kind = iota
	Directory
	File
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "missing"
	}
}

// KindOf stats path. Any stat failure counts as Missing.
func KindOf(path string) Kind {
	info, err := os.Stat(path)
	if err != nil {
		return Missing
	}
	if info.IsDir() {
		return Directory
	}
	return File
}

// Entry is one child of a previewed directory.
type Entry struct {
	Name  string
	IsDir bool
}

// Preview is the precomputed content of the preview pane.
type Preview struct {
	Path    string
	Kind    Kind
	ModTime time.Time
	Size    int64
	Entries []Entry
	// Err is set when the directory exists but could not be read.
	Err error
}

// Load builds the preview for path. Hidden entries are skipped unless
// showHidden is set. Entries are ordered directories first, then by name.
func Load(path string, showHidden bool) Preview {
	p := Preview{Path: path, Kind: Missing}

	info, err := os.Stat(path)
	if err != nil {
		return p
	}
	p.ModTime = info.ModTime()
	p.Size = info.Size()

	if !info.IsDir() {
		p.Kind = File
		return p
	}
	p.Kind = Directory

	dirEntries, err := os.ReadDir(path)
	if err != nil && len(dirEntries) == 0 {
		p.Err = fmt.Errorf("reading %s: %w", path, err)
		return p
	}

	for _, de := range dirEntries {
		if !showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		p.Entries = append(p.Entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	Sort(p.Entries)
	return p
}

// Sort orders entries alphabetically, then stably moves directories first.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IsDir && !entries[j].IsDir
	})
}
