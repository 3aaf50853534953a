package markdown

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	headingPattern    = compile(`^(#{1,6})\s+(.*)`)
	rulePattern       = compile(`^(\*{3,}|-{3,}|_{3,})\s*$`)
	blockquotePattern = compile(`^>\s?(.*)`)
	unorderedPattern  = compile(`^(\s*)([-*+])\s+(.*)`)
	orderedPattern    = compile(`^(\s*)(\d+)\.\s+(.*)`)

	taskCheckedPattern   = compile(`^\[[xX]\]\s+`)
	taskUncheckedPattern = compile(`^\[ \]\s+`)
)

// blockKind is the line-level construct a line was classified as.
type blockKind int

const (
	blockText blockKind = iota
	blockCodePlaceholder
	blockTableRow
	blockHeading
	blockRule
	blockQuote
	blockUnorderedItem
	blockOrderedItem
)

// listKind is the list type recorded for one nesting depth.
type listKind int

const (
	listUnordered listKind = iota
	listOrdered
)

// marker is the Confluence list character for k.
func (k listKind) marker() string {
	if k == listOrdered {
		return "#"
	}
	return "*"
}

// classifyLine decides the block kind of line. The order of the checks is
// the precedence of the constructs.
func classifyLine(line string, codeBlocks *placeholders) blockKind {
	switch {
	case codeBlocks.in(line):
		return blockCodePlaceholder
	case tableRowPattern.MatchString(line):
		return blockTableRow
	case headingPattern.MatchString(line):
		return blockHeading
	case rulePattern.MatchString(line) && !unorderedPattern.MatchString(line) && !orderedPattern.MatchString(line):
		return blockRule
	case blockquotePattern.MatchString(line):
		return blockQuote
	case unorderedPattern.MatchString(line):
		return blockUnorderedItem
	case orderedPattern.MatchString(line):
		return blockOrderedItem
	default:
		return blockText
	}
}

// blockTransformer carries the list stack and table buffer across lines.
type blockTransformer struct {
	codeBlocks *placeholders
	result     []string
	lists      []listKind
	table      []string
}

// transformBlocks converts headings, rules, blockquotes, lists and tables
// into their Confluence forms.
func transformBlocks(lines []string, codeBlocks *placeholders) []string {
	t := &blockTransformer{
		codeBlocks: codeBlocks,
		result:     make([]string, 0, len(lines)),
	}
	for _, line := range lines {
		t.line(line)
	}
	t.flushTable()
	return t.result
}

// line converts one line, or buffers it when it belongs to a table.
func (t *blockTransformer) line(line string) {
	kind := classifyLine(line, t.codeBlocks)
	if kind == blockTableRow {
		t.table = append(t.table, line)
		return
	}
	t.flushTable()

	switch kind {
	case blockCodePlaceholder:
		t.lists = nil
		t.emit(line)

	case blockHeading:
		t.lists = nil
		m := headingPattern.FindStringSubmatch(line)
		content := strings.TrimRightFunc(m[2], isSpace)
		t.emit("h" + strconv.Itoa(len(m[1])) + ". " + content)

	case blockRule:
		t.lists = nil
		t.emit("----")

	case blockQuote:
		t.lists = nil
		t.emit("bq. " + flattenBlockquote(line))

	case blockUnorderedItem:
		m := unorderedPattern.FindStringSubmatch(line)
		prefix := t.listPrefix(utf8.RuneCountInString(m[1]), listUnordered)
		content := m[3]
		switch {
		case taskUncheckedPattern.MatchString(content):
			t.emit(prefix + " ( ) " + taskUncheckedPattern.ReplaceAllString(content, ""))
		case taskCheckedPattern.MatchString(content):
			t.emit(prefix + " (/) " + taskCheckedPattern.ReplaceAllString(content, ""))
		default:
			t.emit(prefix + " " + content)
		}

	case blockOrderedItem:
		m := orderedPattern.FindStringSubmatch(line)
		t.emit(t.listPrefix(utf8.RuneCountInString(m[1]), listOrdered) + " " + m[3])

	default:
		t.lists = nil
		t.emit(line)
	}
}

// emit appends converted lines to the result.
func (t *blockTransformer) emit(lines ...string) {
	t.result = append(t.result, lines...)
}

// listPrefix updates the list stack for an item indented by indent columns
// and returns its marker prefix, e.g. "*#" for an ordered item under a
// bullet.
func (t *blockTransformer) listPrefix(indent int, kind listKind) string {
	depth := indent/2 + 1
	if len(t.lists) > depth {
		t.lists = t.lists[:depth]
	}
	for len(t.lists) < depth {
		t.lists = append(t.lists, kind)
	}
	t.lists[depth-1] = kind

	var b strings.Builder
	for _, k := range t.lists {
		b.WriteString(k.marker())
	}
	return b.String()
}

// flushTable converts and emits the buffered table rows, if any.
func (t *blockTransformer) flushTable() {
	if len(t.table) == 0 {
		return
	}
	t.emit(convertTable(t.table)...)
	t.table = nil
}

// flattenBlockquote strips every leading quote marker: "> > deep" becomes
// "deep".
func flattenBlockquote(line string) string {
	content := blockquotePattern.FindStringSubmatch(line)[1]
	for {
		m := blockquotePattern.FindStringSubmatch(content)
		if m == nil {
			return content
		}
		content = m[1]
	}
}
