package verbose

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Not parallel: Enabled and Output are package state.
func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	t.Cleanup(func() {
		Enabled = false
	})

	Enabled = false
	Printf("hidden %d\n", 1)
	Println("hidden")
	Dump("hidden", struct{ A int }{A: 1})
	assert.Empty(t, buf.String())

	Enabled = true
	Printf("shown %d\n", 1)
	Println("a", "b")
	assert.Equal(t, "shown 1\na b\n", buf.String())

	buf.Reset()
	Dump("config", struct{ Jobs int }{Jobs: 4})
	assert.Contains(t, buf.String(), "config: ")
	assert.Contains(t, buf.String(), "Jobs: 4")
}
