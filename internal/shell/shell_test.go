package shell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/shell"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/golden"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/home/nik", `'/home/nik'`},
		{"/tmp/with space", `'/tmp/with space'`},
		{"/tmp/it's", `'/tmp/it'\''s'`},
		{"$HOME", `'$HOME'`},
		{"", `''`},
	}

	for _, tt := range tests {
		assert.Check(t, is.Equal(shell.Quote(tt.in), tt.want), "input %q", tt.in)
	}
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.md")
	assert.NilError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"directory", dir, "cd '" + dir + "'"},
		{"file", file, "nvim '" + file + "'"},
		{"missing", filepath.Join(dir, "gone"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shell.Command(model.Bookmark{Path: tt.path}, "nvim")
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestInstall(t *testing.T) {
	home := t.TempDir()
	bashrc := filepath.Join(home, ".bashrc")
	assert.NilError(t, os.WriteFile(bashrc, []byte("export PATH=\"$HOME/bin:$PATH\"\n"), 0o644))

	results, err := shell.Install(home)
	assert.NilError(t, err)
	assert.DeepEqual(t, results, []shell.InstallResult{{File: bashrc, Added: true}})

	data, err := os.ReadFile(bashrc)
	assert.NilError(t, err)
	golden.Assert(t, string(data), "bashrc.golden")

	_, err = os.Stat(filepath.Join(home, ".zshrc"))
	assert.Check(t, os.IsNotExist(err), "zshrc must not be created")
}

func TestInstall_Idempotent(t *testing.T) {
	home := t.TempDir()
	zshrc := filepath.Join(home, ".zshrc")
	assert.NilError(t, os.WriteFile(zshrc, nil, 0o644))

	_, err := shell.Install(home)
	assert.NilError(t, err)
	first, err := os.ReadFile(zshrc)
	assert.NilError(t, err)

	results, err := shell.Install(home)
	assert.NilError(t, err)
	assert.DeepEqual(t, results, []shell.InstallResult{{File: zshrc, Added: false}})

	second, err := os.ReadFile(zshrc)
	assert.NilError(t, err)
	assert.Equal(t, string(second), string(first))
	assert.Equal(t, string(first), shell.Snippet)
}

func TestInstall_EditedFunctionKeepsMarker(t *testing.T) {
	home := t.TempDir()
	bashrc := filepath.Join(home, ".bashrc")
	edited := "\n" + shell.Marker + "\npm() { pathmark \"$@\"; }\n"
	assert.NilError(t, os.WriteFile(bashrc, []byte(edited), 0o644))

	results, err := shell.Install(home)
	assert.NilError(t, err)
	assert.DeepEqual(t, results, []shell.InstallResult{{File: bashrc, Added: false}})

	data, err := os.ReadFile(bashrc)
	assert.NilError(t, err)
	assert.Equal(t, string(data), edited)
}

func TestInstall_NoRCFiles(t *testing.T) {
	results, err := shell.Install(t.TempDir())
	assert.NilError(t, err)
	assert.Check(t, is.Len(results, 0))
}
