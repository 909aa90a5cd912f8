package tmux

import (
	"log/slog"

	"github.com/abhinav/tmux-sessions/internal/log"
)

//go:generate mockgen -destination tmuxtest/mock_driver.go -package tmuxtest github.com/abhinav/tmux-sessions/internal/tmux Driver

// Driver is a low-level API to access tmux. This maps directly to tmux
// commands.
type Driver interface {
	// ListWindows runs the tmux list-windows command and returns its
	// output.
	ListWindows(ListWindowsRequest) ([]byte, error)

	// ListSessions runs the tmux list-sessions command and returns its
	// output.
	ListSessions(ListSessionsRequest) ([]byte, error)

	// NewSession runs the tmux new-session command.
	NewSession(NewSessionRequest) error

	// NewWindow runs the tmux new-window command.
	NewWindow(NewWindowRequest) error

	// ShowOptions runs the tmux show-options command and returns its
	// output.
	ShowOptions(ShowOptionsRequest) ([]byte, error)
}

// ListWindowsRequest specifies the parameters for a list-windows command.
type ListWindowsRequest struct {
	// List windows of all sessions. Target is ignored if this is set.
	All bool

	// Session whose windows should be listed. Defaults to current.
	Target string

	// Output format, if any.
	Format string
}

func (r ListWindowsRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("all", r.All),
		log.OmitEmpty(slog.String, "target", r.Target),
		log.OmitEmpty(slog.String, "format", r.Format),
	)
}

// ListSessionsRequest specifies the parameters for a list-sessions command.
type ListSessionsRequest struct {
	// Output format, if any.
	Format string

	// Quiet requests that a failure not be reported to the user.
	// The error is still returned.
	//
	// list-sessions fails when no tmux server is running,
	// which is often an expected state.
	Quiet bool
}

func (r ListSessionsRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "format", r.Format),
		slog.Bool("quiet", r.Quiet),
	)
}

// NewSessionRequest specifies the parameter for a new-session command.
type NewSessionRequest struct {
	// Name of the session, if any.
	Name string

	// Working directory of the session's first window, if any.
	StartDirectory string

	// Whether the new session should be detached from this client.
	Detached bool
}

func (r NewSessionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "name", r.Name),
		log.OmitEmpty(slog.String, "dir", r.StartDirectory),
		slog.Bool("detached", r.Detached),
	)
}

// NewWindowRequest specifies the parameters for a new-window command.
type NewWindowRequest struct {
	// Target window or session. Use ExactSession to build a target that
	// matches a session name exactly.
	Target string

	// Name of the new window, if any.
	Name string

	// Working directory of the new window, if any.
	StartDirectory string
}

func (r NewWindowRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "target", r.Target),
		log.OmitEmpty(slog.String, "name", r.Name),
		log.OmitEmpty(slog.String, "dir", r.StartDirectory),
	)
}

// ExactSession returns a target for new-window that refers to the session
// with exactly the given name rather than any session with that prefix.
// The new window receives the next free index in that session.
func ExactSession(name string) string {
	return "=" + name + ":"
}

// ShowOptionsRequest specifies the parameters for a show-options command.
type ShowOptionsRequest struct {
	Global bool // show global options

	// Quiet requests that a failure not be reported to the user.
	Quiet bool
}

func (r ShowOptionsRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("global", r.Global),
		slog.Bool("quiet", r.Quiet),
	)
}
