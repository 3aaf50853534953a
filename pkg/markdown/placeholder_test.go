package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	p := newPlaceholders(tagLink)
	k0 := p.add("[a|b]")
	k1 := p.add("[" + k0 + "|c]")

	assert.NotEqual(t, k0, k1)
	assert.Len(t, p.keys, 2)
	assert.True(t, p.in("x "+k1+" y"))
	assert.False(t, p.in("plain"))
	assert.False(t, newPlaceholders(tagBold).in(k0))

	assert.Equal(t, "x [[a|b]|c] y", p.restore("x "+k1+" y"))
	assert.Equal(t, "plain", p.restore("plain"))
}

func TestPlaceholders_KeysAreInert(t *testing.T) {
	t.Parallel()

	p := newPlaceholders(tagInlineCode)
	key := p.add("{{x}}")

	// formatting patterns must leave keys alone
	assert.Equal(t, key, formatInline(key))
	assert.Equal(t, "*"+key+"*", formatInline("**"+key+"**"))
}
