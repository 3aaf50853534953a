// Package lint reports Markdown constructs that the converter leaves
// untranslated.
package lint

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	fm "github.com/qawatake/md2markup/internal/pkg/markdown"
	"github.com/qawatake/md2markup/pkg/markdown"
	bf "github.com/russross/blackfriday/v2"
)

// Kind names a construct the converter does not translate.
type Kind string

const (
	KindHTML           Kind = "html"
	KindFootnote       Kind = "footnote"
	KindDefinitionList Kind = "definition-list"
	KindReferenceLink  Kind = "reference-link"
	KindSetextHeading  Kind = "setext-heading"
	KindIndentedCode   Kind = "indented-code"

	KindUnterminatedFrontMatter Kind = "unterminated-front-matter"
	KindInvalidFrontMatter      Kind = "invalid-front-matter"
)

var messages = map[Kind]string{
	KindHTML:           "raw HTML is copied through unchanged",
	KindFootnote:       "footnotes are not converted",
	KindDefinitionList: "definition lists are not converted",
	KindReferenceLink:  "reference-style link definitions are not converted",
	KindSetextHeading:  "setext headings are not converted, use # headings",
	KindIndentedCode:   "indented code blocks are not converted, use a fenced block",

	KindUnterminatedFrontMatter: "front matter has no closing --- line and is converted as text",
	KindInvalidFrontMatter:      "front matter is not valid YAML",
}

// Finding is one reported construct. Line is 1-based, 0 when the line
// could not be located.
type Finding struct {
	Line int
	Kind Kind
}

// Message describes the finding's kind.
func (f Finding) Message() string {
	return messages[f.Kind]
}

// Format renders f as "path:line: message".
func (f Finding) Format(path string) string {
	if f.Line == 0 {
		return fmt.Sprintf("%s: %s", path, f.Message())
	}
	return fmt.Sprintf("%s:%d: %s", path, f.Line, f.Message())
}

const extensions = bf.CommonExtensions | bf.Footnotes | bf.DefinitionLists

var (
	referenceDefPattern   = regexp.MustCompile(`^ {0,3}\[([^\]^][^\]]*)\]:\s*\S`)
	setextUnderline       = regexp.MustCompile(`^ {0,3}=+\s*$`)
	definitionLinePattern = regexp.MustCompile(`^:\s`)
	nonParagraphPattern   = regexp.MustCompile(`^\s*([#>|]|[-*+]\s|\d+\.\s)`)
)

// Check returns the findings in source ordered by line.
func Check(source string) []Finding {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	lines := strings.Split(source, "\n")
	inFence := fencedLines(lines)

	c := &checker{lines: lines, inFence: inFence, cursors: map[Kind]int{}}
	c.checkFrontMatter(source)
	c.walk(bf.New(bf.WithExtensions(extensions)).Parse([]byte(source)))
	c.scanLines()

	sort.SliceStable(c.findings, func(i, j int) bool {
		return c.findings[i].Line < c.findings[j].Line
	})
	return c.findings
}

type checker struct {
	lines    []string
	inFence  []bool
	cursors  map[Kind]int
	findings []Finding
}

// checkFrontMatter reports a leading front matter block that would break
// --strip-front-matter.
func (c *checker) checkFrontMatter(source string) {
	_, _, err := fm.ParseFrontMatter(source)
	switch {
	case err == nil:
	case errors.Is(err, fm.ErrUnterminatedFrontMatter):
		c.findings = append(c.findings, Finding{Line: 1, Kind: KindUnterminatedFrontMatter})
	default:
		c.findings = append(c.findings, Finding{Line: 1, Kind: KindInvalidFrontMatter})
	}
}

// walk reports the constructs that blackfriday turns into nodes.
func (c *checker) walk(doc *bf.Node) {
	doc.Walk(func(n *bf.Node, entering bool) bf.WalkStatus {
		if !entering {
			return bf.GoToNext
		}
		switch n.Type {
		case bf.HTMLBlock, bf.HTMLSpan:
			c.report(KindHTML, firstLine(n.Literal))
		case bf.Link:
			if n.NoteID > 0 {
				c.report(KindFootnote, "[^"+string(n.Destination)+"]")
			}
		case bf.List:
			if n.ListFlags&bf.ListTypeDefinition != 0 && !n.IsFootnotesList {
				c.reportPattern(KindDefinitionList, definitionLinePattern)
				return bf.SkipChildren
			}
		case bf.CodeBlock:
			if !n.IsFenced {
				c.report(KindIndentedCode, firstLine(n.Literal))
			}
		}
		return bf.GoToNext
	})
}

// scanLines finds constructs the parser consumes without leaving a node.
func (c *checker) scanLines() {
	for i, line := range c.lines {
		if c.inFence[i] {
			continue
		}
		if referenceDefPattern.MatchString(line) {
			c.findings = append(c.findings, Finding{Line: i + 1, Kind: KindReferenceLink})
		}
		if i > 0 && setextUnderline.MatchString(line) && isParagraphLine(c.lines[i-1]) && !c.inFence[i-1] {
			c.findings = append(c.findings, Finding{Line: i, Kind: KindSetextHeading})
		}
	}
}

// report records kind at the first line containing needle, starting from
// the line last reported for the same kind.
func (c *checker) report(kind Kind, needle string) {
	c.add(kind, func(line string) bool {
		return needle != "" && strings.Contains(line, needle)
	})
}

// reportPattern is report with a line pattern instead of a needle.
func (c *checker) reportPattern(kind Kind, re *regexp.Regexp) {
	c.add(kind, re.MatchString)
}

// add records kind at the first unfenced line from the kind's cursor that
// satisfies match, or without a line when none does.
func (c *checker) add(kind Kind, match func(string) bool) {
	for i := c.cursors[kind]; i < len(c.lines); i++ {
		if c.inFence[i] || !match(c.lines[i]) {
			continue
		}
		c.cursors[kind] = i
		c.findings = append(c.findings, Finding{Line: i + 1, Kind: kind})
		return
	}
	c.findings = append(c.findings, Finding{Kind: kind})
}

// fencedLines marks the lines the converter treats as a fenced code block,
// fences included. An unterminated fence runs to the end.
func fencedLines(lines []string) []bool {
	inFence := make([]bool, len(lines))
	var fence byte
	for i, line := range lines {
		if fence != 0 {
			inFence[i] = true
			if markdown.IsFenceEnd(line, fence) {
				fence = 0
			}
			continue
		}
		if f, _, ok := markdown.FenceStart(line); ok {
			inFence[i] = true
			fence = f
		}
	}
	return inFence
}

// isParagraphLine reports whether line can be the text of a setext heading.
func isParagraphLine(line string) bool {
	return strings.TrimSpace(line) != "" && !nonParagraphPattern.MatchString(line)
}

// firstLine returns the first non-blank line of literal, trimmed.
func firstLine(literal []byte) string {
	for _, line := range bytes.Split(literal, []byte("\n")) {
		if s := strings.TrimSpace(string(line)); s != "" {
			return s
		}
	}
	return ""
}
