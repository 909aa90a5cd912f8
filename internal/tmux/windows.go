package tmux

import (
	"log/slog"

	"github.com/abhinav/tmux-sessions/internal/tmux/tmuxfmt"
)

// WindowInfo reports information about a tmux window.
type WindowInfo struct {
	Session string // name of the session that owns the window
	Name    string // name of the window

	// Current path of the active pane in the window. Falls back to the
	// session's start directory if tmux cannot determine it.
	Path string
}

func (i WindowInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", i.Session),
		slog.String("name", i.Name),
		slog.String("path", i.Path),
	)
}

var (
	_sessionName     = tmuxfmt.Var("session_name")
	_windowName      = tmuxfmt.Var("window_name")
	_paneCurrentPath = tmuxfmt.Coalesce("pane_current_path", tmuxfmt.Var("session_path"))
)

// ListAllWindows lists every window in every session of the tmux server,
// in the order reported by tmux.
//
// A window whose session name, window name, or path contains a tab cannot be
// parsed; ListAllWindows fails with an error matching tmuxfmt.ErrFieldCount
// in that case.
func ListAllWindows(driver Driver) ([]WindowInfo, error) {
	var (
		info WindowInfo
		fc   tmuxfmt.Capturer
	)
	fc.StringVar(&info.Session, _sessionName)
	fc.StringVar(&info.Name, _windowName)
	fc.StringVar(&info.Path, _paneCurrentPath)

	format, parse := fc.Prepare()
	out, err := driver.ListWindows(ListWindowsRequest{
		All:    true,
		Format: format,
	})
	if err != nil {
		return nil, err
	}

	var windows []WindowInfo
	err = tmuxfmt.Lines(out, func(line []byte) error {
		info = WindowInfo{}
		if err := parse(line); err != nil {
			return err
		}
		windows = append(windows, info)
		return nil
	})
	return windows, err
}

// SessionNames lists the names of the sessions that currently exist.
//
// The request is made quietly: if no tmux server is running, the error is
// returned but not reported to the user.
func SessionNames(driver Driver) ([]string, error) {
	var (
		name string
		fc   tmuxfmt.Capturer
	)
	fc.StringVar(&name, _sessionName)

	format, parse := fc.Prepare()
	out, err := driver.ListSessions(ListSessionsRequest{
		Format: format,
		Quiet:  true,
	})
	if err != nil {
		return nil, err
	}

	var names []string
	err = tmuxfmt.Lines(out, func(line []byte) error {
		if err := parse(line); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	return names, err
}
