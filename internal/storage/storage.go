package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nikbrunner/pathmark/internal/config"
	"github.com/nikbrunner/pathmark/internal/model"
)

var (
	// ErrNotFound is returned when no bookmark matches an id or path.
	ErrNotFound = errors.New("bookmark not found")
	// ErrDuplicatePath is returned when a path is already bookmarked.
	ErrDuplicatePath = errors.New("bookmark already exists")
)

// Store defines durable CRUD over bookmarks, keyed by integer id and unique
// canonical path.
type Store interface {
	// List returns all bookmarks ordered by id.
	List() ([]model.Bookmark, error)
	Get(id int64) (model.Bookmark, error)
	GetByPath(path string) (model.Bookmark, error)
	// Create persists b and returns it with its assigned id.
	Create(b model.Bookmark) (model.Bookmark, error)
	Update(b model.Bookmark) error
	Delete(id int64) error
	MarkVisited(id int64, at time.Time) error
	Close() error
}

// Open opens the backend selected by cfg.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return NewJSONStorage(cfg.Database), nil
	case config.BackendSQLite, "":
		return NewSQLiteStorage(cfg.Database)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// DeleteByPath removes the bookmark with the canonical form of path.
func DeleteByPath(s Store, path string) (model.Bookmark, error) {
	canonical, err := model.CanonicalPath(path)
	if err != nil {
		return model.Bookmark{}, err
	}
	b, err := s.GetByPath(canonical)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Bookmark{}, fmt.Errorf("bookmark with path %s: %w", canonical, ErrNotFound)
		}
		return model.Bookmark{}, err
	}
	return b, s.Delete(b.ID)
}

// jsonFile is the on-disk layout of the JSON backend.
type jsonFile struct {
	NextID    int64            `json:"nextId"`
	Bookmarks []model.Bookmark `json:"bookmarks"`
}

// JSONStorage implements Store using a JSON file. The file is re-read on
// every call so edits from other processes are picked up.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// load reads the file. Returns an empty file if it doesn't exist.
func (s *JSONStorage) load() (*jsonFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &jsonFile{NextID: 1, Bookmarks: []model.Bookmark{}}, nil
		}
		return nil, err
	}

	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	if f.Bookmarks == nil {
		f.Bookmarks = []model.Bookmark{}
	}
	for _, b := range f.Bookmarks {
		if b.ID >= f.NextID {
			f.NextID = b.ID + 1
		}
	}
	if f.NextID < 1 {
		f.NextID = 1
	}
	return &f, nil
}

// save writes the file, creating the directory if it doesn't exist.
func (s *JSONStorage) save(f *jsonFile) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStorage) index(f *jsonFile, id int64) int {
	for i, b := range f.Bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONStorage) List() ([]model.Bookmark, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(f.Bookmarks, func(i, j int) bool {
		return f.Bookmarks[i].ID < f.Bookmarks[j].ID
	})
	return f.Bookmarks, nil
}

func (s *JSONStorage) Get(id int64) (model.Bookmark, error) {
	f, err := s.load()
	if err != nil {
		return model.Bookmark{}, err
	}
	if i := s.index(f, id); i >= 0 {
		return f.Bookmarks[i], nil
	}
	return model.Bookmark{}, ErrNotFound
}

func (s *JSONStorage) GetByPath(path string) (model.Bookmark, error) {
	f, err := s.load()
	if err != nil {
		return model.Bookmark{}, err
	}
	for _, b := range f.Bookmarks {
		if b.Path == path {
			return b, nil
		}
	}
	return model.Bookmark{}, ErrNotFound
}

func (s *JSONStorage) Create(b model.Bookmark) (model.Bookmark, error) {
	f, err := s.load()
	if err != nil {
		return model.Bookmark{}, err
	}
	for _, existing := range f.Bookmarks {
		if existing.Path == b.Path {
			return model.Bookmark{}, ErrDuplicatePath
		}
	}

	b.ID = f.NextID
	f.NextID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	f.Bookmarks = append(f.Bookmarks, b)
	return b, s.save(f)
}

func (s *JSONStorage) Update(b model.Bookmark) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	i := s.index(f, b.ID)
	if i < 0 {
		return ErrNotFound
	}
	for _, existing := range f.Bookmarks {
		if existing.Path == b.Path && existing.ID != b.ID {
			return ErrDuplicatePath
		}
	}
	f.Bookmarks[i] = b
	return s.save(f)
}

func (s *JSONStorage) Delete(id int64) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	i := s.index(f, id)
	if i < 0 {
		return ErrNotFound
	}
	f.Bookmarks = append(f.Bookmarks[:i], f.Bookmarks[i+1:]...)
	return s.save(f)
}

func (s *JSONStorage) MarkVisited(id int64, at time.Time) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	i := s.index(f, id)
	if i < 0 {
		return ErrNotFound
	}
	f.Bookmarks[i].VisitedAt = &at
	return s.save(f)
}

// Close is a no-op; the file is not held open.
func (s *JSONStorage) Close() error {
	return nil
}
