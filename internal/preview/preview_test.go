package preview_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/pathmark/internal/preview"
)

func mkTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, d := range []string{"zeta", "alpha", ".git"} {
		assert.NilError(t, os.Mkdir(filepath.Join(dir, d), 0755))
	}
	for _, f := range []string{"b.txt", "a.txt", ".env"} {
		assert.NilError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
	}
	return dir
}

func names(entries []preview.Entry) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestKindOf(t *testing.T) {
	dir := mkTree(t)

	assert.Check(t, is.Equal(preview.KindOf(dir), preview.Directory))
	assert.Check(t, is.Equal(preview.KindOf(filepath.Join(dir, "a.txt")), preview.File))
	assert.Check(t, is.Equal(preview.KindOf(filepath.Join(dir, "nope")), preview.Missing))
}

func TestLoad_DirectoriesFirstThenAlphabetical(t *testing.T) {
	dir := mkTree(t)

	p := preview.Load(dir, false)

	assert.Check(t, is.Equal(p.Kind, preview.Directory))
	assert.Check(t, p.Err == nil)
	assert.DeepEqual(t, names(p.Entries), []string{"alpha", "zeta", "a.txt", "b.txt"})
	assert.Check(t, p.Entries[0].IsDir)
	assert.Check(t, !p.Entries[2].IsDir)
}

func TestLoad_ShowHidden(t *testing.T) {
	dir := mkTree(t)

	p := preview.Load(dir, true)

	assert.DeepEqual(t, names(p.Entries), []string{".git", "alpha", "zeta", ".env", "a.txt", "b.txt"})
}

func TestLoad_FileAndMissing(t *testing.T) {
	dir := mkTree(t)

	f := preview.Load(filepath.Join(dir, "a.txt"), false)
	assert.Check(t, is.Equal(f.Kind, preview.File))
	assert.Check(t, is.Equal(f.Size, int64(1)))
	assert.Check(t, is.Len(f.Entries, 0))

	m := preview.Load(filepath.Join(dir, "gone"), false)
	assert.Check(t, is.Equal(m.Kind, preview.Missing))
	assert.Check(t, m.ModTime.IsZero())
}

func TestSort_IsStable(t *testing.T) {
	entries := []preview.Entry{
		{Name: "b", IsDir: false},
		{Name: "d", IsDir: true},
		{Name: "a", IsDir: false},
		{Name: "c", IsDir: true},
	}

	preview.Sort(entries)

	assert.DeepEqual(t, names(entries), []string{"c", "d", "a", "b"})
}

func TestKind_String(t *testing.T) {
	assert.Check(t, is.Equal(preview.Directory.String(), "directory"))
	assert.Check(t, is.Equal(preview.File.String(), "file"))
	assert.Check(t, is.Equal(preview.Missing.String(), "missing"))
}
