package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrInputNotFound = errors.New("file not found")

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CheckInputs returns an error wrapping ErrInputNotFound for the first path
// that is not an existing file.
func CheckInputs(paths []string) error {
	for _, p := range paths {
		if !FileExists(p) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, p)
		}
	}
	return nil
}

// OutputPath replaces the extension of input with ext: "doc.md" becomes
// "doc.txt". A name without extension gets ext appended, and a leading dot
// does not start an extension.
func OutputPath(input, ext string) string {
	base := filepath.Base(input)
	current := filepath.Ext(base)
	if current == base {
		current = ""
	}
	return strings.TrimSuffix(input, current) + ext
}

// ReadText reads a text file as UTF-8. A byte order mark is removed, and
// UTF-16 input with a BOM is transcoded. Invalid UTF-8 sequences become
// U+FFFD.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return "", err
	}
	defer f.Close()

	decoder := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}

// WriteText writes text to path as UTF-8, creating parent directories.
func WriteText(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// FindMarkdownFiles lists .md and .markdown files under root, skipping
// hidden directories. Paths are sorted.
func FindMarkdownFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
