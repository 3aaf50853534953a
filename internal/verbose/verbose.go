// Package verbose prints diagnostics when the --verbose flag is set.
// Everything goes to stderr so converted output on stdout stays clean.
package verbose

import (
	"fmt"
	"io"
	"os"

	"github.com/Code-Hex/dd"
)

var (
	Enabled bool

	Output io.Writer = os.Stderr
)

// Printf formats to Output when Enabled.
func Printf(format string, args ...any) {
	if Enabled {
		fmt.Fprintf(Output, format, args...)
	}
}

// Println prints args to Output when Enabled.
func Println(args ...any) {
	if Enabled {
		fmt.Fprintln(Output, args...)
	}
}

// Dump pretty-prints v as Go syntax under a label.
func Dump(label string, v any) {
	if Enabled {
		fmt.Fprintf(Output, "%s: %s\n", label, dd.Dump(v))
	}
}
