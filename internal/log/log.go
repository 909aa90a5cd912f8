// Package log provides the leveled, user-facing logger used by
// tmux-sessions. Messages are meant to be read by a person at a terminal,
// not parsed by machines.
package log

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Level specifies the level of logging.
type Level = slog.Level

// Supported log levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)

// Logger is a named, leveled logger.
type Logger struct{ *slog.Logger }

// New builds a logger that writes entries at or above lvl to w.
//
// Levels are colored only if w is a terminal
// and NO_COLOR is not set.
func New(w io.Writer, lvl Level) *Logger {
	return &Logger{slog.New(newHandler(w, lvl, !isTerminal(w)))}
}

func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WithName builds a new logger with the provided name. The returned logger is
// safe to use concurrently with this logger.
func (l *Logger) WithName(name string) *Logger {
	out := *l
	out.Logger = l.WithGroup(name)
	return &out
}
