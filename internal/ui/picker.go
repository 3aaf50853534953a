package ui

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
)

var ErrNoFiles = errors.New("no Markdown files found")

// PreviewFunc renders the preview pane for path within width x height.
type PreviewFunc func(path string, width, height int) string

// PickFiles lets the user choose one or more of files with a fuzzy finder.
// Tab marks several entries. The returned paths keep the order of files.
func PickFiles(files []string, preview PreviewFunc) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	opts := []fuzzyfinder.Option{
		fuzzyfinder.WithHeader("Select Markdown files (Tab to mark, Enter to convert)"),
	}
	if preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 || i >= len(files) {
				return ""
			}
			return preview(files[i], w, h)
		}))
	}

	indices, err := fuzzyfinder.FindMulti(files, func(i int) string { return files[i] }, opts...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	return selectInOrder(files, indices), nil
}

// selectInOrder returns the chosen files in their original order, whatever
// order they were picked in.
func selectInOrder(files []string, indices []int) []string {
	selected := make(map[int]bool, len(indices))
	for _, i := range indices {
		selected[i] = true
	}
	picked := make([]string, 0, len(indices))
	for i, f := range files {
		if selected[i] {
			picked = append(picked, f)
		}
	}
	return picked
}
