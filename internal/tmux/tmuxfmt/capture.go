package tmuxfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates fields in formats prepared by a Capturer.
const Delimiter = "\t"

// ErrFieldCount indicates that a line of tmux output did not have the number
// of fields that the Capturer expected.
//
// This usually means that one of the captured values contained
// the Delimiter.
var ErrFieldCount = errors.New("unexpected number of fields")

// FieldCountError is returned when a line of output has too many or too few
// fields. It matches ErrFieldCount with errors.Is.
type FieldCountError struct {
	Line string // offending line
	Want int
	Got  int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("%v: expected %d, got %d in %q", ErrFieldCount, e.Want, e.Got, e.Line)
}

// Is reports whether target is ErrFieldCount.
func (e *FieldCountError) Is(target error) bool {
	return target == ErrFieldCount
}

// Value receives a value from the tmux output as a string and parses it.
type Value interface {
	Set(string) error
}

type captureExpr struct {
	Expr  Expr
	Value Value
}

// Capturer captures the output of tmuxfmt expressions into Go values.
type Capturer struct {
	exprs []captureExpr
}

// Prepare prepares the specified expressions into a tmuxfmt message. The
// returned capture function parses a single line of the resultant text and
// fills the previously recorded pointers.
//
// The capture function may be called repeatedly, once per line, when the
// message is used as the format of a tmux listing command.
func (c *Capturer) Prepare() (msg string, capture func([]byte) error) {
	exprs := c.exprs
	rendered := make([]string, len(exprs))
	for i, e := range exprs {
		rendered[i] = Render(e.Expr)
	}

	return strings.Join(rendered, Delimiter), func(bs []byte) error {
		line := strings.TrimRight(string(bs), "\r\n")
		fields := strings.Split(line, Delimiter)
		if len(fields) != len(exprs) {
			return &FieldCountError{
				Line: line,
				Want: len(exprs),
				Got:  len(fields),
			}
		}

		for i, s := range fields {
			if err := exprs[i].Value.Set(s); err != nil {
				return fmt.Errorf("capture %q: %w", rendered[i], err)
			}
		}

		return nil
	}
}

// Var records that the output of the given tmuxfmt expression should be loaded
// into the specified value.
func (c *Capturer) Var(v Value, e Expr) {
	c.exprs = append(c.exprs, captureExpr{Expr: e, Value: v})
}

// StringVar specifies that the output of the provided expression should fill
// this string pointer.
func (c *Capturer) StringVar(ptr *string, e Expr) {
	c.Var((*stringValue)(ptr), e)
}

type stringValue string

func (v *stringValue) Set(s string) error {
	*(*string)(v) = s
	return nil
}

// Lines calls fn with each non-blank line of the output of a tmux listing
// command, in order. It stops at the first error returned by fn.
func Lines(out []byte, fn func(line []byte) error) error {
	scan := bufio.NewScanner(bytes.NewReader(out))
	scan.Buffer(nil, max(len(out)+1, bufio.MaxScanTokenSize))
	for scan.Scan() {
		line := scan.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scan.Err()
}
