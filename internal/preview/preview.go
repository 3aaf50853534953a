// Package preview renders a Markdown source and its converted markup side
// by side for the terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	DefaultWidth = 120
	minWidth     = 40

	// border and horizontal padding of a pane
	paneChrome = 4
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
)

type Options struct {
	// Width is the total width of both panes. Zero means DefaultWidth.
	Width int
	// Style is a glamour standard style such as "dark" or "notty". Empty
	// picks one from the terminal background.
	Style string
}

// Render returns the rendered Markdown next to the markup text. Markup lines
// longer than the pane are truncated with an ellipsis.
func Render(source, markup string, opts Options) (string, error) {
	width := opts.Width
	if width == 0 {
		width = DefaultWidth
	}
	width = max(width, minWidth)
	pane := width / 2
	content := pane - paneChrome

	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(content))
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := renderer.Render(source)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	left := renderPane("Markdown", truncateLines(strings.Trim(rendered, "\n"), content), content)
	right := renderPane("Confluence", truncateLines(markup, content), content)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right), nil
}

// renderPane draws a titled, bordered pane whose content area is width
// cells wide.
func renderPane(title, body string, width int) string {
	return paneStyle.Width(width + 2).Render(titleStyle.Render(title) + "\n\n" + body)
}

// truncateLines cuts every line of s to width cells, ANSI sequences
// excluded.
func truncateLines(s string, width int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}
