// Package markdown holds helpers for Markdown source files that sit outside
// the converter itself.
package markdown

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

var ErrUnterminatedFrontMatter = errors.New("front matter is not terminated")

// ParseFrontMatter splits a leading YAML front matter block from content.
// The block starts with a "---" first line and ends with the next "---"
// line; LF and CRLF line endings are both accepted. Without a block the
// metadata is nil and body is content.
func ParseFrontMatter(content string) (map[string]any, string, error) {
	raw, body, opened, closed := splitFrontMatter(content)
	if !opened {
		return nil, content, nil
	}
	if !closed {
		return nil, content, ErrUnterminatedFrontMatter
	}

	var frontMatter map[string]any
	if err := yaml.Unmarshal([]byte(raw), &frontMatter); err != nil {
		return nil, body, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return frontMatter, body, nil
}

// StripFrontMatter returns content without its front matter block. Content
// whose block is not terminated is returned unchanged.
func StripFrontMatter(content string) string {
	_, body, _, closed := splitFrontMatter(content)
	if !closed {
		return content
	}
	return body
}

// splitFrontMatter cuts content into the raw YAML between the delimiter
// lines and the body after them. opened reports a delimiter on the first
// line, closed a matching one further down.
func splitFrontMatter(content string) (raw, body string, opened, closed bool) {
	content = strings.TrimPrefix(content, "\ufeff")
	first, rest, found := strings.Cut(content, "\n")
	if !found || !isDelimiter(first) {
		return "", content, false, false
	}

	offset := 0
	for {
		line, next, more := strings.Cut(rest[offset:], "\n")
		if isDelimiter(line) {
			if !more {
				next = ""
			}
			return rest[:offset], next, true, true
		}
		if !more {
			return "", content, true, false
		}
		offset += len(line) + 1
	}
}

// isDelimiter reports whether line is "---", allowing trailing blanks and
// a CR.
func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == frontMatterDelimiter
}
