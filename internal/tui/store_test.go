package tui

import (
	"errors"

	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/storage"
)

// memStore is an in-memory Store. Mutating its fields directly plays the
// part of another process editing the database.
type memStore struct {
	bookmarks []model.Bookmark
	nextID    int64
	listErr   error
}

func newMemStore(names ...string) *memStore {
	s := &memStore{nextID: 1}
	for _, n := range names {
		s.add(n)
	}
	return s
}

// testPath returns a path that does not exist, so rows render as missing.
func testPath(name string) string {
	return "/pathmark-test/" + name
}

func (s *memStore) add(name string) model.Bookmark {
	b := model.Bookmark{ID: s.nextID, Name: name, Path: testPath(name)}
	s.nextID++
	s.bookmarks = append(s.bookmarks, b)
	return b
}

func (s *memStore) remove(name string) bool {
	for i, b := range s.bookmarks {
		if b.Name == name {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			return true
		}
	}
	return false
}

func (s *memStore) names() []string {
	out := make([]string, len(s.bookmarks))
	for i, b := range s.bookmarks {
		out[i] = b.DisplayName()
	}
	return out
}

func (s *memStore) List() ([]model.Bookmark, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]model.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out, nil
}

func (s *memStore) Update(b model.Bookmark) error {
	idx := -1
	for i, existing := range s.bookmarks {
		if existing.ID == b.ID {
			idx = i
		} else if existing.Path == b.Path {
			return storage.ErrDuplicatePath
		}
	}
	if idx < 0 {
		return storage.ErrNotFound
	}
	s.bookmarks[idx] = b
	return nil
}

func (s *memStore) Delete(id int64) error {
	if id <= 0 {
		return errors.New("memstore: invalid id")
	}
	for i, b := range s.bookmarks {
		if b.ID == id {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}
