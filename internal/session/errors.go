package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionComplete is returned when no questions remain.
	ErrSessionComplete = errors.New("session complete")

	// ErrQuit is returned by Apply after a Quit action has saved the state.
	ErrQuit = errors.New("session quit")

	// ErrNotFound is returned by a Persister when no snapshot exists for a name.
	ErrNotFound = errors.New("session not found")
)

// InvalidInputError indicates an answer choice outside the offered options.
// The session state is unchanged and the same question stays current.
type InvalidInputError struct {
	Choice  int
	Options int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid choice %d: must be between 0 and %d", e.Choice, e.Options-1)
}

// PersistenceError wraps a failure to save, load or restore a session.
type PersistenceError struct {
	Op   string // "save", "load" or "restore"
	Name string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s session %q: %v", e.Op, e.Name, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
