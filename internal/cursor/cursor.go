// Package cursor persists the last processed status ID per watched account.
package cursor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Store keeps one plain-text file per target under Dir.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// path returns the cursor file for a given target.
func (s *Store) path(target string) string {
	return filepath.Join(s.Dir, "last_id_"+safeName(target)+".txt")
}

// Read returns the stored ID for target. A missing or unreadable file means "no cursor".
func (s *Store) Read(target string) (string, bool) {
	data, err := os.ReadFile(s.path(target))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("cursor unreadable, treating as absent", slog.String("target", target), slog.Any("error", err))
		}
		return "", false
	}
	id := strings.TrimSpace(string(data))
	return id, id != ""
}

// Write replaces the stored ID for target, creating Dir on demand.
func (s *Store) Write(target, id string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	final := s.path(target)
	tmp := fmt.Sprintf("%s.tmp-%d", final, time.Now().UnixNano())
	if err := os.WriteFile(tmp, []byte(id), 0o644); err != nil {
		return fmt.Errorf("write cursor %s: %w", final, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write cursor %s: %w", final, err)
	}
	slog.Debug("cursor saved", slog.String("target", target), slog.String("id", id))
	return nil
}

// TryLock takes a non-blocking exclusive lock named name under Dir.
// ok is false when another process holds it.
func (s *Store) TryLock(name string) (release func(), ok bool, err error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, false, fmt.Errorf("create state dir: %w", err)
	}
	fl := flock.New(filepath.Join(s.Dir, safeName(name)+".lock"))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("lock %s: %w", name, err)
	}
	if !locked {
		return nil, false, nil
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			slog.Warn("unlock failed", slog.String("lock", name), slog.Any("error", err))
		}
	}, true, nil
}

// safeName keeps target names from escaping Dir.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
