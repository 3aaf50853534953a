package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		ext      string
		expected string
	}{
		{input: "README.md", ext: ".txt", expected: "README.txt"},
		{input: "docs/guide.markdown", ext: ".txt", expected: "docs/guide.txt"},
		{input: "notes", ext: ".txt", expected: "notes.txt"},
		{input: "archive.tar.md", ext: ".wiki", expected: "archive.tar.wiki"},
		{input: ".hidden", ext: ".txt", expected: ".hidden.txt"},
		{input: "v1.2/notes", ext: ".txt", expected: "v1.2/notes.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, OutputPath(tt.input, tt.ext))
		})
	}
}

func TestReadText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  []byte
		expected string
	}{
		{name: "utf-8", content: []byte("# Héllo\n"), expected: "# Héllo\n"},
		{name: "utf-8 bom", content: []byte("\xef\xbb\xbf# Hello\n"), expected: "# Hello\n"},
		{name: "utf-16le bom", content: []byte("\xff\xfe#\x00 \x00A\x00"), expected: "# A"},
		{name: "utf-16be bom", content: []byte("\xfe\xff\x00#\x00 \x00A"), expected: "# A"},
		{name: "invalid utf-8", content: []byte("a\xffb"), expected: "a\ufffdb"},
		{name: "empty", content: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "in.md")
			require.NoError(t, os.WriteFile(path, tt.content, 0o644))

			got, err := ReadText(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadText_NotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.md")
	_, err := ReadText(path)
	assert.ErrorIs(t, err, ErrInputNotFound)
	assert.EqualError(t, err, "file not found: "+path)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "nested", "doc.txt")
	require.NoError(t, WriteText(path, "h1. Hello\n"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "h1. Hello\n", string(b))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Dir(path)), "directories are not files")
}

func TestCheckInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	missing := filepath.Join(dir, "b.md")

	assert.NoError(t, CheckInputs([]string{a}))
	err := CheckInputs([]string{a, missing, "c.md"})
	assert.ErrorIs(t, err, ErrInputNotFound)
	assert.EqualError(t, err, "file not found: "+missing)
}

func TestFindMarkdownFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.markdown", "docs/c.MD", "notes.txt", ".git/d.md", "docs/.cache/e.md"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	files, err := FindMarkdownFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.markdown"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "docs", "c.MD"),
	}, files)
}
