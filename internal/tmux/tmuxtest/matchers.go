package tmuxtest

import (
	"fmt"

	"github.com/abhinav/tmux-sessions/internal/tmux"
	"github.com/golang/mock/gomock"
)

// NewSessionMatcher is a gomock matcher that matches
// tmux.NewSessionRequest objects by session name and detached state.
type NewSessionMatcher struct {
	Name     string
	Detached bool
}

var _ gomock.Matcher = NewSessionMatcher{}

func (m NewSessionMatcher) String() string {
	return fmt.Sprintf("NewSessionRequest{Name: %q, Detached: %v}", m.Name, m.Detached)
}

// Matches reports whether the provided NewSessionRequest matches.
func (m NewSessionMatcher) Matches(x interface{}) bool {
	req, ok := x.(tmux.NewSessionRequest)
	if !ok {
		return false
	}

	return req.Name == m.Name && req.Detached == m.Detached
}

// NewWindowMatcher is a gomock matcher that matches tmux.NewWindowRequest
// objects for a window created in the named session.
type NewWindowMatcher struct {
	Session string // matched exactly with tmux.ExactSession
	Name    string
	Path    string
}

var _ gomock.Matcher = NewWindowMatcher{}

func (m NewWindowMatcher) String() string {
	return fmt.Sprintf("NewWindowRequest{Target: %q, Name: %q, StartDirectory: %q}",
		tmux.ExactSession(m.Session), m.Name, m.Path)
}

// Matches reports whether the provided NewWindowRequest matches.
func (m NewWindowMatcher) Matches(x interface{}) bool {
	req, ok := x.(tmux.NewWindowRequest)
	if !ok {
		return false
	}

	return req.Target == tmux.ExactSession(m.Session) &&
		req.Name == m.Name &&
		req.StartDirectory == m.Path
}
