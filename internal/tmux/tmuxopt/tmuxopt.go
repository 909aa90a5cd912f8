// Package tmuxopt loads user-defined tmux options
// (set with "set-option -g @name value") into Go variables.
package tmuxopt

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"sync"

	"github.com/abhinav/tmux-sessions/internal/tmux"
	"go.uber.org/multierr"
)

// Value is a receiver for a tmux option value.
type Value interface {
	Set(value string) error
}

// Loader loads tmux options into user-specified variables.
type Loader struct {
	Tmux tmux.Driver

	once   sync.Once
	values map[string]Value
}

func (l *Loader) init() {
	l.once.Do(func() { l.values = make(map[string]Value) })
}

// Var specifies that the given option should be loaded into the provided Value
// object.
func (l *Loader) Var(val Value, option string) {
	l.init()

	l.values[option] = val
}

// StringVar specifies that the given option should be loaded as a string.
func (l *Loader) StringVar(dest *string, option string) {
	l.Var((*stringValue)(dest), option)
}

// Load loads tmux options using the underlying tmux.Driver with the provided
// request. This will fill all previously specified values.
// Options that are not set in tmux leave their variables untouched.
func (l *Loader) Load(req tmux.ShowOptionsRequest) (err error) {
	if len(l.values) == 0 {
		return nil
	}

	out, err := l.Tmux.ShowOptions(req)
	if err != nil {
		return err
	}

	scan := bufio.NewScanner(bytes.NewReader(out))
	for scan.Scan() {
		line := scan.Bytes()

		idx := bytes.IndexByte(line, ' ')
		if idx < 0 {
			continue
		}

		name := string(line[:idx])
		v, ok := l.values[name]
		if !ok {
			continue
		}

		if serr := v.Set(unquote(string(line[idx+1:]))); serr != nil {
			err = multierr.Append(err, fmt.Errorf("load option %q: %w", name, serr))
		}
	}

	return multierr.Append(err, scan.Err())
}

// unquote removes the quotes tmux adds around values with special
// characters. Values that fail to unquote are returned as-is.
func unquote(s string) string {
	if len(s) == 0 {
		return s
	}

	switch s[0] {
	case '"':
		if o, err := strconv.Unquote(s); err == nil {
			return o
		}
	case '\'':
		// tmux single-quotes values that contain double quotes and
		// escapes backslashes inside them. strconv only accepts single
		// quotes around a single rune, so swap them for double quotes.
		if len(s) >= 2 && s[len(s)-1] == '\'' {
			body := s[1 : len(s)-1]
			var b bytes.Buffer
			for i := 0; i < len(body); i++ {
				if body[i] == '\\' && i+1 < len(body) {
					i++
				}
				b.WriteByte(body[i])
			}
			return b.String()
		}
	}
	return s
}

type stringValue string

func (v *stringValue) Set(s string) error {
	*(*string)(v) = s
	return nil
}
