package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abhinav/tmux-sessions/internal/snapshot"
	"github.com/abhinav/tmux-sessions/internal/tmux/tmuxopt"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"
)

// _fileOption is the tmux option that may hold the snapshot file path.
//
//	set-option -g @sessions-file '~/.config/tmux/sessions.json'
const _fileOption = "@sessions-file"

var _defaultConfig = config{
	Tmux: "tmux",
}

type config struct {
	File    string // snapshot file
	Tmux    string // tmux command line
	LogFile string
	Verbose bool
}

func (c *config) RegisterFlags(flag *pflag.FlagSet) {
	flag.StringVar(&c.File, "file", "",
		"`path` of the sessions file (default $HOME/"+snapshot.DefaultFilename+")")
	flag.StringVar(&c.Tmux, "tmux", "",
		"tmux `command` with any leading arguments, e.g. 'tmux -L work' (default \"tmux\")")
	flag.StringVar(&c.LogFile, "log", "", "append logs to `file` instead of stderr")
	flag.BoolVarP(&c.Verbose, "verbose", "v", false, "log more output")
}

func (c *config) RegisterOptions(load *tmuxopt.Loader) {
	load.StringVar(&c.File, _fileOption)
}

// FillFrom updates this config object, filling empty values with values from
// the provided struct but not overwriting those that are already set.
func (c *config) FillFrom(o *config) {
	if len(c.File) == 0 {
		c.File = o.File
	}
	if len(c.Tmux) == 0 {
		c.Tmux = o.Tmux
	}
	if len(c.LogFile) == 0 {
		c.LogFile = o.LogFile
	}
	c.Verbose = c.Verbose || o.Verbose
}

// TmuxCommand splits the tmux command line into words
// using shell quoting rules.
func (c *config) TmuxCommand() ([]string, error) {
	args, err := shellwords.Parse(c.Tmux)
	if err != nil {
		return nil, fmt.Errorf("parse tmux command %q: %w", c.Tmux, err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty tmux command")
	}
	return args, nil
}

// needsHome reports whether path starts with "~" and must be expanded
// with expandHome.
func needsHome(path string) bool {
	return path == "~" || strings.HasPrefix(path, "~/")
}

// expandHome replaces a leading "~" in path with the home directory.
func expandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}
