package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// DefaultFilename is the name of the snapshot file
// inside the user's home directory.
const DefaultFilename = ".tmux_sessions.json"

// DefaultPath returns the default location of the snapshot file
// for a user with the given home directory.
func DefaultPath(home string) string {
	return filepath.Join(home, DefaultFilename)
}

// ErrNotExist is returned by Store.Load if the snapshot file does not exist.
var ErrNotExist = errors.New("snapshot file not found")

// DecodeError is returned by Store.Load if the snapshot file is not a valid
// snapshot.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %v: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Store reads and writes snapshots from a file.
//
// Store does not lock the file. Concurrent saves and loads of the same file
// have undefined results.
type Store struct {
	Path string
}

// Save writes the snapshot to the file, replacing its previous contents
// entirely.
func (s *Store) Save(snap *Snapshot) (err error) {
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	_, err = f.Write(data)
	return err
}

// Load reads the snapshot from the file.
//
// If the file does not exist, Load returns an error matching ErrNotExist.
// If it has malformed contents, Load returns a *DecodeError.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNotExist, s.Path)
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &DecodeError{Path: s.Path, Err: err}
	}
	return &snap, nil
}
