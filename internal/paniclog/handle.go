// Package paniclog turns panics into errors
// and writes their stack traces to an io.Writer.
package paniclog

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Error is a recovered panic.
type Error struct {
	Value any    // value passed to panic
	Stack []byte // stack trace at the time of recovery
}

func (e *Error) Error() string {
	switch v := e.Value.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("panic: %v", v)
	}
}

// Unwrap returns the panic value if it was an error.
func (e *Error) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Handle handles a panic value, logging it and its stack trace to the given
// io.Writer. Returns nil if pval is nil.
func Handle(pval any, w io.Writer) error {
	if pval == nil {
		return nil
	}

	err := &Error{Value: pval, Stack: debug.Stack()}
	fmt.Fprintf(w, "panic: %v\n%s", pval, err.Stack)
	return err
}

// Recover recovers a panic and stores it into the given error pointer,
// replacing any error already there.
//
//	defer paniclog.Recover(&err, os.Stderr)
func Recover(err *error, w io.Writer) {
	if pval := recover(); pval != nil {
		*err = Handle(pval, w)
	}
}
