// tmux-sessions saves the layout of running tmux sessions to a file
// and recreates them later.
//
//	tmux-sessions save-sessions
//	tmux-sessions load-sessions
//
// Only session names, window names, and working directories are saved.
// Split panes are not.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abhinav/tmux-sessions/internal/log"
	"github.com/abhinav/tmux-sessions/internal/paniclog"
	"github.com/abhinav/tmux-sessions/internal/snapshot"
	"github.com/abhinav/tmux-sessions/internal/tmux"
	"github.com/abhinav/tmux-sessions/internal/tmux/tmuxopt"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var _version = "dev"

const _name = "tmux-sessions"

var _main = mainCmd{
	Stdout: os.Stdout,
	Stderr: os.Stderr,
	Getenv: os.Getenv,
}

func main() {
	if err := run(&_main, os.Args[1:]); err != nil {
		fmt.Fprintln(_main.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *mainCmd, args []string) error {
	var cfg config
	root := &cobra.Command{
		Use:     _name,
		Short:   "Save and restore tmux sessions",
		Version: _version,
		Long: `tmux-sessions saves the names, windows, and working directories of
all running tmux sessions to a file, and recreates sessions from that file.

Sessions that are already running are not changed when loading.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetArgs(args)
	root.SetOut(cmd.Stdout)
	root.SetErr(cmd.Stderr)
	cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:     "save-sessions",
		Aliases: []string{"save"},
		Short:   "Save all running sessions to the sessions file",
		Long: `Saves every window of every running tmux session to the sessions file,
replacing its previous contents. Does nothing if tmux has no windows.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return cmd.Run(&cfg, func(e *env) target {
				return &saveCmd{
					Log:    e.Log,
					Tmux:   e.Tmux,
					Store:  e.Store,
					Stdout: e.Stdout,
				}
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:     "load-sessions",
		Aliases: []string{"load"},
		Short:   "Recreate saved sessions that are not running",
		Long: `Recreates each session in the sessions file that is not already running,
along with its windows. Running sessions are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return cmd.Run(&cfg, func(e *env) target {
				return &loadCmd{
					Log:    e.Log,
					Tmux:   e.Tmux,
					Store:  e.Store,
					Stdout: e.Stdout,
					Stderr: e.Stderr,
				}
			})
		},
	})

	return root.Execute()
}

type mainCmd struct {
	Stdout io.Writer
	Stderr io.Writer

	Getenv func(string) string // == os.Getenv

	newTmuxDriver func(argv []string) tmuxShellDriver
	runTarget     func(target) error
	openLog       func(path string) (io.WriteCloser, error)
	userHomeDir   func() (string, error) // == os.UserHomeDir
}

// tmuxShellDriver is the subset of *tmux.ShellDriver used by mainCmd.
type tmuxShellDriver interface {
	tmux.Driver

	SetLogger(*log.Logger)
}

func newTmuxDriver(argv []string) tmuxShellDriver {
	return &tmux.ShellDriver{Path: argv[0], Args: argv[1:]}
}

// target is a subcommand ready to run.
type target interface{ Run() error }

func runTarget(t target) error {
	return t.Run()
}

func openLog(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// env holds the dependencies shared by all subcommands.
type env struct {
	Log    *log.Logger
	Tmux   tmux.Driver
	Store  *snapshot.Store
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *mainCmd) init() {
	if cmd.newTmuxDriver == nil {
		cmd.newTmuxDriver = newTmuxDriver
	}
	if cmd.runTarget == nil {
		cmd.runTarget = runTarget
	}
	if cmd.openLog == nil {
		cmd.openLog = openLog
	}
	if cmd.userHomeDir == nil {
		cmd.userHomeDir = os.UserHomeDir
	}
}

// Run sets up logging and tmux for the given configuration,
// and runs the target built by newTarget.
func (cmd *mainCmd) Run(cfg *config, newTarget func(*env) target) (err error) {
	cmd.init()
	cfg.FillFrom(&_defaultConfig)

	logW := cmd.Stderr
	if file := cfg.LogFile; len(file) > 0 {
		var f io.WriteCloser
		f, err = cmd.openLog(file)
		if err != nil {
			return fmt.Errorf("open log %q: %w", file, err)
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		logW = f
	}

	defer paniclog.Recover(&err, logW)

	lvl := log.Info
	if cfg.Verbose {
		lvl = log.Debug
	}
	logger := log.New(logW, lvl)

	argv, err := cfg.TmuxCommand()
	if err != nil {
		return err
	}
	tmuxDriver := cmd.newTmuxDriver(argv)
	tmuxDriver.SetLogger(logger.WithName("tmux"))

	path, err := cmd.storePath(cfg, tmuxDriver, logger)
	if err != nil {
		return err
	}

	return cmd.runTarget(newTarget(&env{
		Log:    logger,
		Tmux:   tmuxDriver,
		Store:  &snapshot.Store{Path: path},
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}))
}

// storePath determines the location of the sessions file. In order of
// precedence, this is the --file flag, the @sessions-file tmux option, or
// the default file in the home directory.
//
// The home directory is only needed for the default file
// and for paths that start with "~".
func (cmd *mainCmd) storePath(cfg *config, driver tmux.Driver, logger *log.Logger) (string, error) {
	path := cfg.File
	if len(path) == 0 {
		var tmuxCfg config
		loader := tmuxopt.Loader{Tmux: driver}
		tmuxCfg.RegisterOptions(&loader)
		if err := loader.Load(tmux.ShowOptionsRequest{Global: true, Quiet: true}); err != nil {
			var cmdErr *tmux.CommandError
			if !errors.As(err, &cmdErr) {
				logger.Warn("could not load tmux options", "error", err)
			}
		}
		path = tmuxCfg.File
	}

	if len(path) > 0 && !needsHome(path) {
		return path, nil
	}

	home := cmd.Getenv("HOME")
	if len(home) == 0 {
		var err error
		home, err = cmd.userHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
	}

	if len(path) == 0 {
		return snapshot.DefaultPath(home), nil
	}
	return expandHome(path, home), nil
}
