package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration, max int) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), ttl, max, nil)
	require.NoError(t, err)
	return s
}

// createSession makes a session holding files of the given sizes, created
// at the given time.
func createSession(t *testing.T, s *Store, at time.Time, sizes map[string]int) string {
	t.Helper()
	s.now = func() time.Time { return at }
	id, dir, err := s.Create()
	require.NoError(t, err)
	for name, n := range sizes {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, n), 0o644))
	}
	return id
}

func TestCreateAndInfo(t *testing.T) {
	s := newTestStore(t, time.Hour, 0)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id := createSession(t, s, created, map[string]int{
		"manifest.json": 10,
		"diagram_0.png": 100,
		"input.png":     1000,
	})

	dir, err := s.Dir(id)
	require.NoError(t, err)
	assert.Equal(t, id, filepath.Base(dir))

	info, err := s.Info(id)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, []string{"diagram_0.png", "input.png", "manifest.json"}, info.Files)
	assert.Equal(t, 3, info.FileCount)
	assert.Equal(t, int64(1110), info.TotalSize)
	assert.Equal(t, created, info.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), info.ExpiresAt)
}

func TestLookupErrors(t *testing.T) {
	s := newTestStore(t, time.Hour, 0)
	id := createSession(t, s, time.Now(), map[string]int{"diagram_0.png": 4})

	_, err := s.Dir("../../etc")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.Dir("0b5f5e0c-8d3f-4f7e-9a43-2f1c4f3a9c11")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, name := range []string{"", "../x.png", "sub/diagram_0.png", ".hidden", ".."} {
		_, err = s.File(id, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}

	_, err = s.File(id, "diagram_9.png")
	assert.ErrorIs(t, err, ErrNotFound)

	path, err := s.File(id, "diagram_0.png")
	require.NoError(t, err)
	assert.FileExists(t, path)

	require.NoError(t, s.RemoveFile(id, "diagram_0.png"))
	assert.NoFileExists(t, path)
	assert.ErrorIs(t, s.RemoveFile(id, "diagram_0.png"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, time.Hour, 0)
	id := createSession(t, s, time.Now(), map[string]int{"a.png": 30, "b.png": 12})

	c, err := s.Delete(id)
	require.NoError(t, err)
	assert.Equal(t, Cleanup{Sessions: 1, Files: 2, Bytes: 42}, c)

	_, err = s.Info(id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Delete(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweep(t *testing.T) {
	s := newTestStore(t, time.Hour, 0)
	now := time.Now()
	old := createSession(t, s, now.Add(-2*time.Hour), map[string]int{"a.png": 5})
	fresh := createSession(t, s, now.Add(-10*time.Minute), map[string]int{"a.png": 7})

	s.now = func() time.Time { return now }
	c, err := s.Sweep()
	require.NoError(t, err)
	assert.Equal(t, Cleanup{Sessions: 1, Files: 1, Bytes: 5}, c)

	_, err = s.Dir(old)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Dir(fresh)
	assert.NoError(t, err)
}

func TestSweepDisabled(t *testing.T) {
	s := newTestStore(t, 0, 0)
	createSession(t, s, time.Now().Add(-48*time.Hour), nil)

	c, err := s.Sweep()
	require.NoError(t, err)
	assert.Zero(t, c)
}

func TestEnforceLimit(t *testing.T) {
	s := newTestStore(t, time.Hour, 2)
	now := time.Now()
	ids := []string{
		createSession(t, s, now.Add(-3*time.Minute), map[string]int{"a.png": 1}),
		createSession(t, s, now.Add(-1*time.Minute), map[string]int{"a.png": 1}),
		createSession(t, s, now.Add(-5*time.Minute), map[string]int{"a.png": 1}),
		createSession(t, s, now, map[string]int{"a.png": 1}),
	}

	c, err := s.EnforceLimit()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Sessions)

	for i, want := range []bool{false, true, false, true} {
		_, err := s.Dir(ids[i])
		assert.Equal(t, want, err == nil, "session %d", i)
	}

	c, err = s.EnforceLimit()
	require.NoError(t, err)
	assert.Zero(t, c)
}

func TestRunSweepsUntilCanceled(t *testing.T) {
	s := newTestStore(t, time.Minute, 0)
	id := createSession(t, s, time.Now().Add(-time.Hour), nil)
	s.now = time.Now

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := s.Dir(id)
		return err != nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
