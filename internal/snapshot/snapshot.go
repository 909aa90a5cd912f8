// Package snapshot defines the saved layout of tmux sessions and the file
// that stores it.
//
// A snapshot is encoded as a JSON object whose keys are session names, in
// the order the sessions were captured, and whose values are the windows of
// that session:
//
//	{
//	    "work": [
//	        {
//	            "window_name": "editor",
//	            "path": "/home/user/src"
//	        }
//	    ]
//	}
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Window is a single window of a saved session.
type Window struct {
	Name string `json:"window_name"`
	Path string `json:"path"` // working directory
}

// Session is a named, ordered list of windows.
type Session struct {
	Name    string
	Windows []Window
}

// Snapshot is an ordered mapping from session names to their windows.
// Session names are unique.
//
// The zero value is an empty snapshot ready to use.
type Snapshot struct {
	sessions []Session
	index    map[string]int // session name -> position in sessions
}

// Len reports the number of sessions in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.sessions)
}

// Sessions returns the sessions in the snapshot in order.
// The returned slice must not be modified.
func (s *Snapshot) Sessions() []Session {
	return s.sessions
}

// Add appends a window to the named session,
// creating the session at the end of the snapshot if it's new.
func (s *Snapshot) Add(session string, w Window) {
	i := s.session(session)
	s.sessions[i].Windows = append(s.sessions[i].Windows, w)
}

// Put sets the windows of the named session, replacing any existing windows.
// A new session is added at the end of the snapshot; an existing one keeps
// its position.
func (s *Snapshot) Put(session string, windows []Window) {
	i := s.session(session)
	s.sessions[i].Windows = windows
}

func (s *Snapshot) session(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}

	if s.index == nil {
		s.index = make(map[string]int)
	}
	i := len(s.sessions)
	s.index[name] = i
	s.sessions = append(s.sessions, Session{Name: name, Windows: []Window{}})
	return i
}

var _ json.Marshaler = (*Snapshot)(nil)

// MarshalJSON encodes the snapshot as a JSON object,
// keeping sessions in order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sess := range s.sessions {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(sess.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		windows := sess.Windows
		if windows == nil {
			windows = []Window{}
		}
		value, err := json.Marshal(windows)
		if err != nil {
			return nil, fmt.Errorf("session %q: %w", sess.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ json.Unmarshaler = (*Snapshot)(nil)

// UnmarshalJSON decodes a JSON object into the snapshot,
// keeping sessions in the order they appear.
// If a session name is repeated, the last value wins
// but the session keeps its first position.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object of sessions, got %v", describe(tok))
	}

	var out Snapshot
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected a session name, got %v", describe(tok))
		}

		var windows []Window
		if err := dec.Decode(&windows); err != nil {
			return fmt.Errorf("session %q: %w", name, err)
		}
		if windows == nil {
			return fmt.Errorf("session %q: %w", name, errNullWindows)
		}
		out.Put(name, windows)
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}

	*s = out
	return nil
}

var errNullWindows = errors.New("expected a list of windows, got null")

func describe(tok json.Token) string {
	switch tok := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", tok.String())
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T %v", tok, tok)
	}
}
