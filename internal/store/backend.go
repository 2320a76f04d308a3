package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/abhisek/knowtest/internal/session"
)

// SessionInfo describes a saved session without restoring it.
type SessionInfo struct {
	Name       string
	TopicIndex int
	TopicCount int
	UpdatedAt  time.Time
}

// Complete reports whether the saved session had finished every topic.
func (i SessionInfo) Complete() bool {
	return i.TopicCount > 0 && i.TopicIndex >= i.TopicCount
}

// Backend is a session snapshot store.
type Backend interface {
	session.Persister

	// List returns every saved session, most recently updated first.
	List(ctx context.Context) ([]SessionInfo, error)

	// Delete removes a saved session. Returns session.ErrNotFound if absent.
	Delete(ctx context.Context, name string) error

	Close() error
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName rejects test names that cannot be used as file names or keys.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid test name %q: use letters, digits, '.', '_' or '-'", name)
	}
	return nil
}

func infoFromSnapshot(name string, snap *session.Snapshot) SessionInfo {
	return SessionInfo{
		Name:       name,
		TopicIndex: snap.TopicIndex,
		TopicCount: len(snap.Topics),
		UpdatedAt:  snap.SavedAt,
	}
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*FileStore)(nil)
	_ Backend = (*RedisStore)(nil)
)
