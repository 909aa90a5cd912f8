package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/abhinav/tmux-sessions/internal/log"
	"github.com/abhinav/tmux-sessions/internal/snapshot"
	"github.com/abhinav/tmux-sessions/internal/tmux"
	"github.com/fatih/color"
)

var _savedColor = color.New(color.FgBlue)

// saveCmd captures the windows of all tmux sessions
// and writes them to the snapshot file.
type saveCmd struct {
	Log    *log.Logger
	Tmux   tmux.Driver
	Store  *snapshot.Store
	Stdout io.Writer
}

// Run saves the current sessions.
//
// If tmux cannot list windows, the failure is reported and Run returns
// without writing anything. If there are no windows, Run does nothing.
func (c *saveCmd) Run() error {
	windows, err := tmux.ListAllWindows(c.Tmux)
	if err != nil {
		var cmdErr *tmux.CommandError
		if errors.As(err, &cmdErr) {
			c.Log.Error(err.Error())
			return nil
		}
		return fmt.Errorf("list windows: %w", err)
	}

	if len(windows) == 0 {
		c.Log.Debug("no windows to save")
		return nil
	}

	var snap snapshot.Snapshot
	for _, w := range windows {
		c.Log.Debug("found window", "window", w)
		snap.Add(w.Session, snapshot.Window{
			Name: w.Name,
			Path: w.Path,
		})
	}

	if err := c.Store.Save(&snap); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	c.Log.Debug("saved sessions",
		"sessions", snap.Len(),
		"windows", len(windows),
		"file", c.Store.Path)

	_, err = _savedColor.Fprintf(c.Stdout, "Sessions saved to %v\n", c.Store.Path)
	return err
}
