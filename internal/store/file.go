package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhisek/knowtest/internal/logger"
	"github.com/abhisek/knowtest/internal/session"
	"gopkg.in/yaml.v3"
)

const stateFileSuffix = "_state.yaml"

// FileStore keeps one YAML file per session at <dir>/<name>_state.yaml.
// Writes go to a temp file that is renamed into place, so a reader never
// sees a partial snapshot.
type FileStore struct {
	dir string
	log *logger.Logger
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+stateFileSuffix)
}

func (f *FileStore) Save(_ context.Context, name string, snap *session.Snapshot) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path(name)); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

func (f *FileStore) Load(_ context.Context, name string) (*session.Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, &session.PersistenceError{Op: "load", Name: name, Err: err}
	}

	var snap session.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, &session.PersistenceError{Op: "load", Name: name, Err: fmt.Errorf("decode snapshot: %w", err)}
	}
	return &snap, nil
}

// List returns every readable session file. Unreadable files are logged and
// skipped.
func (f *FileStore) List(ctx context.Context) ([]SessionInfo, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, "*"+stateFileSuffix))
	if err != nil {
		return nil, fmt.Errorf("list state files: %w", err)
	}

	var out []SessionInfo
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), stateFileSuffix)
		snap, err := f.Load(ctx, name)
		if err != nil {
			f.log.Warn("skipping unreadable session file", "path", m, "error", err)
			continue
		}
		out = append(out, infoFromSnapshot(name, snap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *FileStore) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return session.ErrNotFound
	}
	return err
}

func (f *FileStore) Close() error { return nil }
