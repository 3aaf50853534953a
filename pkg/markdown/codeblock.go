package markdown

import (
	"regexp"
	"strings"
)

var (
	// ```lang or ~~~lang, the language token may be empty
	fenceOpenPattern = compile("^(`{3,}|~{3,})([" + wordClass + "+-]*)$")

	fenceClosePatterns = map[byte]*regexp.Regexp{
		'`': compile("^`{3,}\\s*$"),
		'~': compile(`^~{3,}\s*$`),
	}
)

// FenceStart reports whether line opens a fenced code block. It returns
// the fence character ('`' or '~') and the language token, which may be
// empty.
func FenceStart(line string) (fence byte, language string, ok bool) {
	m := fenceOpenPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return m[1][0], trimSpace(m[2]), true
}

// IsFenceEnd reports whether line closes a block opened with fence. Any run
// of three or more fence characters closes it, regardless of the opener's
// length.
func IsFenceEnd(line string, fence byte) bool {
	closer, ok := fenceClosePatterns[fence]
	return ok && closer.MatchString(line)
}

// extractCodeBlocks replaces every fenced code block with a single
// placeholder line holding the rendered {code} macro.
func (c *Converter) extractCodeBlocks(lines []string, codeBlocks *placeholders) []string {
	result := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		fence, lang, ok := FenceStart(lines[i])
		if !ok {
			result = append(result, lines[i])
			continue
		}
		language := c.codeLanguage(lang)

		// an unterminated fence runs to the end of input
		var body []string
		for i++; i < len(lines); i++ {
			if IsFenceEnd(lines[i], fence) {
				break
			}
			body = append(body, lines[i])
		}

		result = append(result, codeBlocks.add(renderCodeMacro(language, body)))
	}

	return result
}

// codeLanguage maps lang through the configured aliases. Unknown languages
// are returned as written.
func (c *Converter) codeLanguage(lang string) string {
	if lang == "" || c.languageAliases == nil {
		return lang
	}
	if alias, ok := c.languageAliases[strings.ToLower(lang)]; ok {
		return alias
	}
	return lang
}

// renderCodeMacro wraps body in a {code} macro, with a language parameter
// when one is given.
func renderCodeMacro(language string, body []string) string {
	header := "{code}"
	if language != "" {
		header = "{code:language=" + language + "}"
	}
	return header + "\n" + strings.Join(body, "\n") + "\n{code}"
}
