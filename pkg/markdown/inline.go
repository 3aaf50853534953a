package markdown

import (
	"regexp"
	"strings"
)

var (
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")

	// Images look like links with a leading "!", so they are matched first.
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

	boldItalicPattern = regexp.MustCompile(`\*\*\*(.+?)\*\*\*|___(.+?)___`)
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	strikePattern     = regexp.MustCompile(`~~(.+?)~~`)

	braceEscaper = strings.NewReplacer("{", "&#123;", "}", "&#125;")
)

// extractInlineCode protects `code` spans. Braces are escaped because
// Confluence reads "{" inside {{...}} as the start of a macro.
func extractInlineCode(line string, inlineCode *placeholders) string {
	return replaceAllSubmatchFunc(inlineCodePattern, line, func(groups []string) string {
		return inlineCode.add("{{" + braceEscaper.Replace(groups[1]) + "}}")
	})
}

// extractLinks protects images and links so that underscores in URLs are
// not read as italics. Image alt text is dropped.
func extractLinks(line string, links *placeholders) string {
	line = replaceAllSubmatchFunc(imagePattern, line, func(groups []string) string {
		return links.add("!" + groups[2] + "!")
	})
	return replaceAllSubmatchFunc(linkPattern, line, func(groups []string) string {
		return links.add("[" + groups[1] + "|" + groups[2] + "]")
	})
}

// formatInline rewrites bold-italic, bold, italic and strikethrough. Bold
// spans are parked behind placeholders until the italic pass is done.
func formatInline(line string) string {
	bold := newPlaceholders(tagBold)

	line = replaceAllSubmatchFunc(boldItalicPattern, line, func(groups []string) string {
		return bold.add("*_" + firstNonEmpty(groups[1:]) + "_*")
	})
	line = replaceAllSubmatchFunc(boldPattern, line, func(groups []string) string {
		return bold.add("*" + firstNonEmpty(groups[1:]) + "*")
	})
	line = replaceItalic(line)
	line = strikePattern.ReplaceAllString(line, "-$1-")

	return bold.restore(line)
}

// replaceItalic converts *text* and _text_ to _text_. A delimiter only counts
// when it is not next to another copy of itself, which keeps leftover "**"
// and "__" runs intact.
func replaceItalic(line string) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(line); i++ {
		if !isItalicDelimiter(line, i) {
			continue
		}
		end := closingItalicDelimiter(line, i)
		if end < 0 {
			continue
		}
		b.WriteString(line[last:i])
		b.WriteByte('_')
		b.WriteString(line[i+1 : end])
		b.WriteByte('_')
		last = end + 1
		i = end
	}
	if last == 0 {
		return line
	}
	b.WriteString(line[last:])
	return b.String()
}

// isItalicDelimiter reports whether s[i] is a lone * or _, one not next to
// another copy of itself.
func isItalicDelimiter(s string, i int) bool {
	c := s[i]
	if c != '*' && c != '_' {
		return false
	}
	return (i == 0 || s[i-1] != c) && (i+1 == len(s) || s[i+1] != c)
}

// closingItalicDelimiter returns the index of the first delimiter that can
// close the span opened at open, or -1. The span holds at least one byte.
func closingItalicDelimiter(s string, open int) int {
	for j := open + 2; j < len(s); j++ {
		if s[j] == s[open] && isItalicDelimiter(s, j) {
			return j
		}
	}
	return -1
}

// replaceAllSubmatchFunc is regexp.ReplaceAllStringFunc with access to the
// capture groups of each match. Groups that did not participate are "".
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[loc[2*g]:loc[2*g+1]]
			}
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(repl(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// firstNonEmpty returns the first non-empty value, or "".
func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
