package checker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/pathmark/internal/checker"
	"github.com/nikbrunner/pathmark/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func fixture(t *testing.T) []model.Bookmark {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	assert.NilError(t, os.WriteFile(file, []byte("x"), 0o644))
	empty := filepath.Join(dir, "empty")
	assert.NilError(t, os.Mkdir(empty, 0o755))

	return []model.Bookmark{
		{ID: 1, Name: "dir", Path: dir},
		{ID: 2, Name: "gone", Path: filepath.Join(dir, "gone")},
		{ID: 3, Name: "file", Path: file},
		{ID: 4, Name: "empty", Path: empty},
		{ID: 5, Name: "also gone", Path: filepath.Join(dir, "nope", "deeper")},
	}
}

func TestCheck_StatusesInInputOrder(t *testing.T) {
	bookmarks := fixture(t)

	results, err := checker.Check(context.Background(), bookmarks, 3, nil)
	assert.NilError(t, err)

	want := []checker.Status{checker.Healthy, checker.Missing, checker.Healthy, checker.Healthy, checker.Missing}
	assert.Assert(t, is.Len(results, len(want)))
	for i, r := range results {
		assert.Check(t, is.Equal(r.Bookmark.ID, bookmarks[i].ID))
		assert.Check(t, is.Equal(r.Status, want[i]), "bookmark %s", r.Bookmark.Name)
	}
}

func TestCheck_Progress(t *testing.T) {
	bookmarks := fixture(t)
	var calls []int

	_, err := checker.Check(context.Background(), bookmarks, 2, func(completed, total int) {
		assert.Check(t, is.Equal(total, len(bookmarks)))
		calls = append(calls, completed)
	})
	assert.NilError(t, err)

	assert.DeepEqual(t, calls, []int{1, 2, 3, 4, 5})
}

func TestCheck_Empty(t *testing.T) {
	results, err := checker.Check(context.Background(), nil, 4, nil)
	assert.NilError(t, err)
	assert.Check(t, is.Len(results, 0))
}

func TestCheck_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checker.Check(ctx, fixture(t), 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheck_Unreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	assert.NilError(t, os.Mkdir(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	results, err := checker.Check(context.Background(), []model.Bookmark{{ID: 1, Path: dir}}, 1, nil)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(results[0].Status, checker.Unreadable))
	assert.Check(t, results[0].Error != "")
}

func TestSummaryAndFilter(t *testing.T) {
	results, err := checker.Check(context.Background(), fixture(t), 4, nil)
	assert.NilError(t, err)

	counts := checker.Summary(results)
	assert.Check(t, is.Equal(counts[checker.Healthy], 3))
	assert.Check(t, is.Equal(counts[checker.Missing], 2))
	assert.Check(t, is.Equal(counts[checker.Unreadable], 0))

	missing := checker.Filter(results, checker.Missing)
	assert.Assert(t, is.Len(missing, 2))
	assert.Check(t, is.Equal(missing[0].Bookmark.Name, "gone"))
	assert.Check(t, is.Equal(missing[1].Bookmark.Name, "also gone"))
}

func TestStatus_String(t *testing.T) {
	assert.Check(t, is.Equal(checker.Healthy.String(), "healthy"))
	assert.Check(t, is.Equal(checker.Missing.String(), "missing"))
	assert.Check(t, is.Equal(checker.Unreadable.String(), "unreadable"))
}
