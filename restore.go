package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/abhinav/tmux-sessions/internal/log"
	"github.com/abhinav/tmux-sessions/internal/snapshot"
	"github.com/abhinav/tmux-sessions/internal/tmux"
	"github.com/fatih/color"
	"go.uber.org/multierr"
)

var _restoredColor = color.New(color.FgGreen)

// loadCmd recreates sessions from the snapshot file
// that are not already running in tmux.
type loadCmd struct {
	Log    *log.Logger
	Tmux   tmux.Driver
	Store  *snapshot.Store
	Stdout io.Writer
	Stderr io.Writer
}

// Run restores saved sessions that don't exist.
//
// Sessions that already exist are left untouched, even if they are missing
// some of the saved windows. Failures to create a session or window are
// reported, and Run moves on to the next one.
func (c *loadCmd) Run() error {
	snap, err := c.Store.Load()
	if err != nil {
		if errors.Is(err, snapshot.ErrNotExist) {
			_, err := fmt.Fprintf(c.Stderr, "Session file %v not found.\n", c.Store.Path)
			return err
		}
		return err
	}

	live := make(map[string]struct{})
	if names, err := tmux.SessionNames(c.Tmux); err != nil {
		// Usually means there's no tmux server.
		c.Log.Debug("assuming no live sessions", "error", err)
	} else {
		for _, name := range names {
			live[name] = struct{}{}
		}
	}

	var errs error
	for _, sess := range snap.Sessions() {
		if _, ok := live[sess.Name]; ok {
			c.Log.Debug("session already exists", "session", sess.Name)
			continue
		}
		errs = multierr.Append(errs, c.restoreSession(sess))
	}

	if n := len(multierr.Errors(errs)); n > 0 {
		c.Log.Warn("some sessions were not fully restored", "failures", n)
	}

	_, err = _restoredColor.Fprintln(c.Stdout, "Sessions restored.")
	return err
}

// restoreSession creates a detached session and its windows.
// Failures are logged as they happen and returned together.
func (c *loadCmd) restoreSession(sess snapshot.Session) (err error) {
	req := tmux.NewSessionRequest{
		Name:     sess.Name,
		Detached: true,
	}
	if len(sess.Windows) > 0 {
		// tmux always creates a first window with the session.
		req.StartDirectory = sess.Windows[0].Path
	}
	if err := c.Tmux.NewSession(req); err != nil {
		c.Log.Error(err.Error())
		// Don't add windows to a session that might belong to someone
		// else.
		return fmt.Errorf("create session %q: %w", sess.Name, err)
	}

	for _, w := range sess.Windows {
		c.Log.Info(w.Name, "session", sess.Name)

		werr := c.Tmux.NewWindow(tmux.NewWindowRequest{
			Target:         tmux.ExactSession(sess.Name),
			Name:           w.Name,
			StartDirectory: w.Path,
		})
		if werr != nil {
			c.Log.Error(werr.Error())
			err = multierr.Append(err, fmt.Errorf("create window %q in %q: %w", w.Name, sess.Name, werr))
		}
	}

	return err
}
