// Package markdown converts Markdown text into Confluence Wiki Markup.
//
// The conversion is a linear pipeline of text rewriting passes:
//
//  1. Fenced code blocks are replaced by placeholders.
//  2. Line-level constructs are converted: headings, horizontal rules,
//     blockquotes, ordered/unordered/task lists and tables.
//  3. For every line, inline code spans and then links/images are replaced by
//     placeholders, bold/italic/strikethrough are rewritten, and the
//     placeholders are restored.
//  4. Code block placeholders are restored in the joined document.
//
// Placeholders keep code and URLs away from the formatting patterns, so
// `**x**` inside a code span or an underscore in a link URL is never
// reformatted.
//
// # Usage
//
//	out := markdown.ConvertToConfluence("# Hello\n\nSome **bold** text.")
//	// h1. Hello
//	//
//	// Some *bold* text.
package markdown

import (
	"strings"
)

// Converter converts Markdown to Confluence Wiki Markup. The zero value is
// not usable; use NewConverter. A Converter is safe for concurrent use.
type Converter struct {
	languageAliases map[string]string
}

// Option configures a Converter.
type Option func(*Converter)

// WithLanguageAliases rewrites the language of fenced code blocks, e.g.
// {"golang": "go"}. Keys are matched case-insensitively.
func WithLanguageAliases(aliases map[string]string) Option {
	return func(c *Converter) {
		if len(aliases) == 0 {
			return
		}
		c.languageAliases = make(map[string]string, len(aliases))
		for k, v := range aliases {
			c.languageAliases[strings.ToLower(k)] = v
		}
	}
}

// NewConverter creates a Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// ConvertToConfluence converts Markdown to Confluence Wiki Markup with the
// default options.
func ConvertToConfluence(input string) string {
	return defaultConverter.Convert(input)
}

// Convert converts Markdown to Confluence Wiki Markup. It is total: every
// input yields an output, and the output ends with a newline exactly when
// the input does. Lines are joined with "\n" whatever break separated them
// in the input.
func (c *Converter) Convert(input string) string {
	if input == "" {
		return input
	}

	trailingNewline := strings.HasSuffix(input, "\n")
	lines := splitLines(input)

	codeBlocks := newPlaceholders(tagCodeBlock)
	lines = c.extractCodeBlocks(lines, codeBlocks)
	lines = transformBlocks(lines, codeBlocks)

	inlineCode := newPlaceholders(tagInlineCode)
	links := newPlaceholders(tagLink)
	for i, line := range lines {
		if codeBlocks.in(line) {
			continue
		}
		line = extractInlineCode(line, inlineCode)
		line = extractLinks(line, links)
		line = formatInline(line)
		line = links.restore(line)
		lines[i] = inlineCode.restore(line)
	}

	output := codeBlocks.restore(strings.Join(lines, "\n"))
	if trailingNewline {
		output += "\n"
	}
	return output
}
