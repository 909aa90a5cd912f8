package tmux

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/abhinav/tmux-sessions/internal/log"
)

const _defaultTmux = "tmux"

// minimal hook to change how exec.Cmd are run. Tests will provide a different
// implementation.
type runner struct {
	Run    func(*exec.Cmd) error
	Output func(*exec.Cmd) ([]byte, error)
}

var defaultRunner = runner{
	Run:    (*exec.Cmd).Run,
	Output: (*exec.Cmd).Output,
}

// CommandError is returned by ShellDriver when a tmux command fails.
type CommandError struct {
	Args []string // full command line, including the executable
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%v: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ShellDriver is a Driver implementation that shells out to tmux to run
// commands.
//
// Commands are executed directly with an argument list, not through a shell,
// so session names, window names, and paths are never re-interpreted.
type ShellDriver struct {
	// Path to the tmux executable. Defaults to "tmux".
	Path string

	// Arguments passed to tmux before every command,
	// for example, []string{"-L", "work"} to select a server socket.
	Args []string

	log  *log.Logger
	run  *runner
	once sync.Once
}

var _ Driver = (*ShellDriver)(nil)

func (s *ShellDriver) init() {
	s.once.Do(func() {
		if s.log == nil {
			s.log = log.Discard
		}

		if s.Path == "" {
			s.Path = _defaultTmux
		}

		if s.run == nil {
			s.run = &defaultRunner
		}
	})
}

// SetLogger specifies the logger for the ShellDriver. By default, the
// ShellDriver does not log anything.
//
// Messages that tmux writes to stderr are logged as errors.
func (s *ShellDriver) SetLogger(log *log.Logger) {
	s.log = log
}

func (s *ShellDriver) cmd(args ...string) *exec.Cmd {
	full := make([]string, 0, len(s.Args)+len(args))
	full = append(full, s.Args...)
	full = append(full, args...)
	return exec.Command(s.Path, full...)
}

// logWriter sets the provided io.Writers to the same log.Writer at the given
// level and returns a function to close them.
//
//	cmd := s.cmd("some", "cmd")
//	defer s.logWriter(log.Error, &cmd.Stderr)()
func (s *ShellDriver) logWriter(lvl log.Level, ws ...*io.Writer) (close func()) {
	writer := &log.Writer{Log: s.log, Level: lvl}
	for _, w := range ws {
		*w = writer
	}
	return func() { writer.Close() }
}

func (s *ShellDriver) output(cmd *exec.Cmd, quiet bool) ([]byte, error) {
	lvl := log.Error
	if quiet {
		lvl = log.Debug
	}
	defer s.logWriter(lvl, &cmd.Stderr)()

	out, err := s.run.Output(cmd)
	if err != nil {
		return nil, &CommandError{Args: cmd.Args, Err: err}
	}
	return out, nil
}

func (s *ShellDriver) exec(cmd *exec.Cmd) error {
	defer s.logWriter(log.Error, &cmd.Stdout, &cmd.Stderr)()

	if err := s.run.Run(cmd); err != nil {
		return &CommandError{Args: cmd.Args, Err: err}
	}
	return nil
}

// ListWindows runs the list-windows command and returns its output.
func (s *ShellDriver) ListWindows(req ListWindowsRequest) ([]byte, error) {
	s.init()

	args := []string{"list-windows"}
	if req.All {
		args = append(args, "-a")
	} else if t := req.Target; len(t) > 0 {
		args = append(args, "-t", t)
	}
	if f := req.Format; len(f) > 0 {
		args = append(args, "-F", f)
	}

	s.log.Debug("list windows", "req", req)
	return s.output(s.cmd(args...), false)
}

// ListSessions runs the list-sessions command and returns its output.
func (s *ShellDriver) ListSessions(req ListSessionsRequest) ([]byte, error) {
	s.init()

	args := []string{"list-sessions"}
	if f := req.Format; len(f) > 0 {
		args = append(args, "-F", f)
	}

	s.log.Debug("list sessions", "req", req)
	return s.output(s.cmd(args...), req.Quiet)
}

// NewSession runs the tmux new-session command.
func (s *ShellDriver) NewSession(req NewSessionRequest) error {
	s.init()

	args := []string{"new-session"}
	if n := req.Name; len(n) > 0 {
		args = append(args, "-s", n)
	}
	if d := req.StartDirectory; len(d) > 0 {
		args = append(args, "-c", d)
	}
	if req.Detached {
		args = append(args, "-d")
	}

	s.log.Debug("new session", "req", req)
	return s.exec(s.cmd(args...))
}

// NewWindow runs the tmux new-window command.
func (s *ShellDriver) NewWindow(req NewWindowRequest) error {
	s.init()

	args := []string{"new-window"}
	if t := req.Target; len(t) > 0 {
		args = append(args, "-t", t)
	}
	if n := req.Name; len(n) > 0 {
		args = append(args, "-n", n)
	}
	if d := req.StartDirectory; len(d) > 0 {
		args = append(args, "-c", d)
	}

	s.log.Debug("new window", "req", req)
	return s.exec(s.cmd(args...))
}

// ShowOptions runs the show-options command.
func (s *ShellDriver) ShowOptions(req ShowOptionsRequest) ([]byte, error) {
	s.init()

	args := []string{"show-options"}
	if req.Global {
		args = append(args, "-g")
	}

	s.log.Debug("show options", "req", req)
	return s.output(s.cmd(args...), req.Quiet)
}
