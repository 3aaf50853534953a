package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Character classes behind \s, \d and \w. Unlike Go's ASCII defaults they
// take U+00A0 and U+3000 as spaces and any script's letters and digits.
const (
	spaceClass = `\t\n\v\f\r \x1c-\x1f\x85\p{Z}`
	digitClass = `\p{Nd}`
	wordClass  = `\p{L}\p{N}_`
)

var unicodeShorthands = strings.NewReplacer(
	`\s`, `[`+spaceClass+`]`,
	`\d`, digitClass,
	`\w`, `[`+wordClass+`]`,
)

// compile is regexp.MustCompile with Unicode-aware \s, \d and \w. The
// shorthands must not be used inside a bracket expression; spell out the
// class constants there.
func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(unicodeShorthands.Replace(pattern))
}

// isSpace reports whether r belongs to spaceClass.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || ('\x1c' <= r && r <= '\x1f')
}

// trimSpace is strings.TrimSpace with isSpace.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isLineBreak reports whether r ends a line. Besides \n and \r this covers
// vertical tab, form feed, the file/group/record separators, NEL and the
// Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// splitLines splits s into lines without their terminators. "\r\n" is one
// break, and a break at the very end does not open an empty last line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
