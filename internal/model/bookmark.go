package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrEmptyPath is returned when a bookmark is created without a path.
var ErrEmptyPath = errors.New("bookmark path is empty")

// NoName is displayed for bookmarks without a name.
const NoName = "<No name>"

// Bookmark represents a saved filesystem path with metadata.
type Bookmark struct {
	ID          int64      `json:"id"` // 0 = not persisted yet
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	VisitedAt   *time.Time `json:"visitedAt"` // nil = never visited
}

// Persisted reports whether the bookmark has been assigned an id by a store.
func (b Bookmark) Persisted() bool {
	return b.ID > 0
}

// DisplayName returns the name, or a placeholder when it is empty.
func (b Bookmark) DisplayName() string {
	if b.Name == "" {
		return NoName
	}
	return b.Name
}

func (b Bookmark) String() string {
	return fmt.Sprintf("%d: %s -> %s", b.ID, b.DisplayName(), b.Path)
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Name        string
	Path        string
	Description string
}

// NewBookmark creates an unpersisted Bookmark with a canonical path.
func NewBookmark(params NewBookmarkParams) (Bookmark, error) {
	path, err := CanonicalPath(params.Path)
	if err != nil {
		return Bookmark{}, err
	}

	return Bookmark{
		Name:        strings.TrimSpace(params.Name),
		Path:        path,
		Description: strings.TrimSpace(params.Description),
		CreatedAt:   time.Now(),
	}, nil
}

// CanonicalPath returns the absolute, symlink-resolved form of path.
// Paths that do not exist are only made absolute.
func CanonicalPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrEmptyPath
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return abs, nil
		}
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}

// UpdateParams holds optional field changes. Nil fields are left untouched.
type UpdateParams struct {
	Name        *string
	Path        *string
	Description *string
}

// Empty reports whether no field would change.
func (p UpdateParams) Empty() bool {
	return p.Name == nil && p.Path == nil && p.Description == nil
}

// Apply returns a copy of b with the params applied. The new path, if any,
// is canonicalized.
func (p UpdateParams) Apply(b Bookmark) (Bookmark, error) {
	if p.Path != nil {
		path, err := CanonicalPath(*p.Path)
		if err != nil {
			return b, err
		}
		b.Path = path
	}
	if p.Name != nil {
		b.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		b.Description = strings.TrimSpace(*p.Description)
	}
	return b, nil
}
