// Package derrors attaches stack traces to errors returned from command
// handlers.
package derrors

import (
	"fmt"

	"github.com/k1LoW/errors"
)

// Wrap adds a stack trace to *errp when it is non-nil. Use it deferred:
//
//	defer derrors.Wrap(&err)
func Wrap(errp *error) {
	if errp == nil || *errp == nil {
		return
	}
	*errp = errors.WithStack(*errp)
}

// StackTraces formats the stack traces recorded on err, or returns "" when
// there are none.
func StackTraces(err error) string {
	st := errors.StackTraces(err)
	if len(st) == 0 {
		return ""
	}
	return fmt.Sprintf("%s", st)
}
