package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		from        string
		to          string
		opts        []Option
		changed     bool
		contains    []string
		notContains []string
	}{
		{
			name:    "equal",
			from:    "h1. A\n* b\n",
			to:      "h1. A\n* b\n",
			changed: false,
		},
		{
			name:    "changed line",
			from:    "h1. A\n* b\n",
			to:      "h1. A\n* c\n",
			changed: true,
			contains: []string{
				"diff --git a/doc.txt b/doc.txt",
				"--- a/doc.txt",
				"+++ b/doc.txt",
				" h1. A\n",
				"-* b\n",
				"+* c\n",
			},
			notContains: []string{"\x1b["},
		},
		{
			name:    "new file",
			from:    "",
			to:      "h1. A\n",
			opts:    []Option{WithNewFile()},
			changed: true,
			contains: []string{
				"new file mode 100644",
				"+++ b/doc.txt",
				"+h1. A\n",
			},
		},
		{
			name:     "new empty file",
			from:     "",
			to:       "",
			opts:     []Option{WithNewFile()},
			changed:  true,
			contains: []string{"new file mode"},
		},
		{
			name:     "colored",
			from:     "a\n",
			to:       "b\n",
			opts:     []Option{WithColor()},
			changed:  true,
			contains: []string{"\x1b["},
		},
		{
			name:        "no context",
			from:        "1\n2\n3\n4\n5\n",
			to:          "1\n2\nx\n4\n5\n",
			opts:        []Option{WithContextLines(0)},
			changed:     true,
			contains:    []string{"-3\n", "+x\n"},
			notContains: []string{" 2\n", " 4\n"},
		},
		{
			name:        "negative context is zero",
			from:        "1\n2\n3\n",
			to:          "1\nx\n3\n",
			opts:        []Option{WithContextLines(-1)},
			changed:     true,
			contains:    []string{"-2\n", "+x\n"},
			notContains: []string{" 1\n", " 3\n"},
		},
		{
			name:        "default context",
			from:        "1\n2\n3\n4\n5\n6\n7\n8\n9\n",
			to:          "1\n2\n3\n4\nx\n6\n7\n8\n9\n",
			changed:     true,
			contains:    []string{" 2\n", " 8\n"},
			notContains: []string{" 1\n", " 9\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, changed, err := Unified("doc.txt", tt.from, tt.to, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			if !tt.changed {
				assert.Empty(t, text)
			}
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, text, s)
			}
		})
	}
}
