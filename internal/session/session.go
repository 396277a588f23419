package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for unknown sessions and files.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for session ids that are not UUIDs.
	ErrInvalidID = errors.New("invalid session id")
	// ErrInvalidName is returned for file names that would leave the session
	// directory.
	ErrInvalidName = errors.New("invalid file name")
)

// Info describes one session.
type Info struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	FileCount int       `json:"file_count"`
	TotalSize int64     `json:"total_size_bytes"`
	Files     []string  `json:"files"`
}

// Cleanup reports what a removal freed.
type Cleanup struct {
	Sessions int   `json:"sessions_deleted"`
	Files    int   `json:"files_deleted"`
	Bytes    int64 `json:"bytes_freed"`
}

func (c *Cleanup) add(o Cleanup) {
	c.Sessions += o.Sessions
	c.Files += o.Files
	c.Bytes += o.Bytes
}

// Store keeps one directory per session under <root>/sessions.
type Store struct {
	dir    string
	ttl    time.Duration
	max    int
	logger *slog.Logger

	mu      sync.Mutex
	created map[string]time.Time
	now     func() time.Time
}

// NewStore creates the sessions directory below root. Sessions older than
// ttl are removed by Sweep; EnforceLimit keeps at most max sessions. A zero
// ttl or max disables that limit.
func NewStore(root string, ttl time.Duration, max int, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dir := filepath.Join(root, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &Store{
		dir:     dir,
		ttl:     ttl,
		max:     max,
		logger:  logger,
		created: make(map[string]time.Time),
		now:     time.Now,
	}, nil
}

// TTL returns the session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create makes a new empty session and returns its id and directory.
func (s *Store) Create() (string, string, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.dir, id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create session: %w", err)
	}

	s.mu.Lock()
	s.created[id] = s.now()
	s.mu.Unlock()

	s.logger.Debug("session created", "session", id)
	return id, dir, nil
}

// Dir returns the directory of an existing session.
func (s *Store) Dir(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidID
	}
	dir := filepath.Join(s.dir, id)
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return "", fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return dir, nil
}

// File returns the path of a regular file stored directly in a session.
func (s *Store) File(id, name string) (string, error) {
	dir, err := s.Dir(id)
	if err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	path := filepath.Join(dir, name)
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return "", fmt.Errorf("file %s in session %s: %w", name, id, ErrNotFound)
	}
	return path, nil
}

// RemoveFile deletes one file from a session.
func (s *Store) RemoveFile(id, name string) error {
	path, err := s.File(id, name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Info lists a session's files.
func (s *Store) Info(id string) (*Info, error) {
	dir, err := s.Dir(id)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list session: %w", err)
	}

	info := &Info{ID: id, Files: []string{}}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		info.Files = append(info.Files, e.Name())
		info.TotalSize += fi.Size()
	}
	sort.Strings(info.Files)
	info.FileCount = len(info.Files)
	info.CreatedAt = s.createdAt(id, dir)
	info.ExpiresAt = info.CreatedAt.Add(s.ttl)
	return info, nil
}

// Delete removes a session and everything in it.
func (s *Store) Delete(id string) (Cleanup, error) {
	dir, err := s.Dir(id)
	if err != nil {
		return Cleanup{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(id, dir)
}

// Sweep removes every session older than the TTL.
func (s *Store) Sweep() (Cleanup, error) {
	if s.ttl <= 0 {
		return Cleanup{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.list()
	if err != nil {
		return Cleanup{}, err
	}
	var (
		total Cleanup
		errs  []error
	)
	now := s.now()
	for _, e := range sessions {
		if now.Sub(e.created) <= s.ttl {
			continue
		}
		c, err := s.remove(e.id, e.dir)
		total.add(c)
		errs = append(errs, err)
	}
	return total, errors.Join(errs...)
}

// EnforceLimit removes the oldest sessions until at most max remain.
func (s *Store) EnforceLimit() (Cleanup, error) {
	if s.max <= 0 {
		return Cleanup{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.list()
	if err != nil || len(sessions) <= s.max {
		return Cleanup{}, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].created.Before(sessions[j].created)
	})

	var (
		total Cleanup
		errs  []error
	)
	for _, e := range sessions[:len(sessions)-s.max] {
		c, err := s.remove(e.id, e.dir)
		total.add(c)
		errs = append(errs, err)
	}
	s.logger.Info("session limit enforced", "removed", total.Sessions, "limit", s.max)
	return total, errors.Join(errs...)
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c, err := s.Sweep()
			if err != nil {
				s.logger.Warn("session sweep incomplete", "error", err)
			}
			if c.Sessions > 0 {
				s.logger.Info("expired sessions removed",
					"sessions", c.Sessions, "files", c.Files, "bytes", c.Bytes)
			}
		}
	}
}

type entry struct {
	id      string
	dir     string
	created time.Time
}

// list returns the session directories. Callers hold mu.
func (s *Store) list() ([]entry, error) {
	dirs, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var out []entry
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		if _, err := uuid.Parse(d.Name()); err != nil {
			continue
		}
		dir := filepath.Join(s.dir, d.Name())
		out = append(out, entry{id: d.Name(), dir: dir, created: s.createdLocked(d.Name(), dir)})
	}
	return out, nil
}

// remove deletes one session directory. Callers hold mu.
func (s *Store) remove(id, dir string) (Cleanup, error) {
	c := Cleanup{Sessions: 1}
	filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			c.Files++
			c.Bytes += fi.Size()
		}
		return nil
	})
	if err := os.RemoveAll(dir); err != nil {
		return Cleanup{}, fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	delete(s.created, id)
	s.logger.Debug("session deleted", "session", id, "files", c.Files, "bytes", c.Bytes)
	return c, nil
}

func (s *Store) createdAt(id, dir string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createdLocked(id, dir)
}

// createdLocked falls back to the directory's modification time for
// sessions left over from an earlier process.
func (s *Store) createdLocked(id, dir string) time.Time {
	if t, ok := s.created[id]; ok {
		return t
	}
	if st, err := os.Stat(dir); err == nil {
		return st.ModTime()
	}
	return s.now()
}
