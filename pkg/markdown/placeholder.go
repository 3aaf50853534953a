package markdown

import (
	"strconv"
	"strings"
)

// placeholderTag identifies the category of protected content.
type placeholderTag string

const (
	tagCodeBlock  placeholderTag = "CB"
	tagInlineCode placeholderTag = "IC"
	tagLink       placeholderTag = "LK"
	tagBold       placeholderTag = "BD"
)

// Placeholder keys are framed by NUL and SOH so that none of the inline
// formatting patterns (* _ ~ `) can match inside them.
const (
	placeholderStart = "\x00"
	placeholderSep   = "\x01"
	placeholderEnd   = "\x00"
)

// placeholders maps opaque keys to their final Confluence text.
type placeholders struct {
	tag    placeholderTag
	keys   []string
	values map[string]string
}

// newPlaceholders creates an empty table for tag.
func newPlaceholders(tag placeholderTag) *placeholders {
	return &placeholders{
		tag:    tag,
		values: make(map[string]string),
	}
}

// add stores value under a fresh key and returns the key.
func (p *placeholders) add(value string) string {
	key := placeholderStart + string(p.tag) + placeholderSep + strconv.Itoa(len(p.keys)) + placeholderEnd
	p.keys = append(p.keys, key)
	p.values[key] = value
	return key
}

// in reports whether s contains a key of this category.
func (p *placeholders) in(s string) bool {
	return strings.Contains(s, placeholderStart+string(p.tag)+placeholderSep)
}

// restore replaces every key in s with its value. Keys are visited newest
// first: a value can only embed keys created before it.
func (p *placeholders) restore(s string) string {
	if len(p.keys) == 0 || !strings.Contains(s, placeholderStart) {
		return s
	}
	for i := len(p.keys) - 1; i >= 0; i-- {
		key := p.keys[i]
		if strings.Contains(s, key) {
			s = strings.ReplaceAll(s, key, p.values[key])
		}
	}
	return s
}
