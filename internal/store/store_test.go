package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type removalLog struct {
	mu       sync.Mutex
	triggers []string
}

func (l *removalLog) record(trigger string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.triggers = append(l.triggers, trigger)
}

func (l *removalLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.triggers...)
}

func newTestStore(t *testing.T, grace time.Duration) (*Store, *removalLog) {
	t.Helper()
	log := &removalLog{}
	s, err := New(Config{Dir: filepath.Join(t.TempDir(), "audio"), MaxAge: time.Hour, Grace: grace, OnRemove: log.record}, nil)
	require.NoError(t, err)
	return s, log
}

func writeArtifact(t *testing.T, s *Store, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(s.Dir(), name)
	require.NoError(t, os.WriteFile(path, []byte("ID3fake"), 0o644))
	when := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, when, when))
	return path
}

func TestNewNameIsUniqueWithinOneSecond(t *testing.T) {
	s, _ := newTestStore(t, time.Second)
	now := time.Unix(1700000000, 0)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := s.NewName(now)
		assert.True(t, IsGenerated(name), name)
		assert.Contains(t, name, "tts_temp_1700000000_")
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	s, _ := newTestStore(t, time.Second)

	for _, name := range []string{"", "../tts_temp_1.mp3", "tts_temp_1.wav", "notes.mp3", `a\tts_temp_1.mp3`, "sub/tts_temp_1.mp3"} {
		_, err := s.Path(name)
		assert.ErrorIs(t, err, ErrInvalidName, "Path(%q)", name)
	}

	p, err := s.Path("tts_temp_1.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "tts_temp_1.mp3"), p)
}

func TestStat(t *testing.T) {
	s, _ := newTestStore(t, time.Second)
	writeArtifact(t, s, "tts_temp_1.mp3", 0)

	a, err := s.Stat("tts_temp_1.mp3")
	require.NoError(t, err)
	assert.Equal(t, int64(len("ID3fake")), a.Size)

	_, err = s.Stat("tts_temp_2.mp3")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSweepRemovesOnlyExpiredGeneratedFiles(t *testing.T) {
	s, log := newTestStore(t, time.Second)
	old := writeArtifact(t, s, "tts_temp_100.mp3", 2*time.Hour)
	fresh := writeArtifact(t, s, "tts_temp_200.mp3", time.Second)
	foreign := filepath.Join(s.Dir(), "keep.mp3")
	require.NoError(t, os.WriteFile(foreign, []byte("x"), 0o644))
	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(foreign, past, past))

	removed := s.Sweep(time.Now())

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, foreign)
	assert.Equal(t, []string{TriggerSweep}, log.snapshot())
}

func TestSweepOnMissingDirectory(t *testing.T) {
	s, _ := newTestStore(t, time.Second)
	require.NoError(t, os.RemoveAll(s.Dir()))

	assert.Equal(t, 0, s.Sweep(time.Now()))
	assert.Equal(t, 0, s.CleanupAll())
}

func TestCleanupAllIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t, time.Second)
	writeArtifact(t, s, "tts_temp_1.mp3", 0)
	writeArtifact(t, s, "tts_temp_2.mp3", 3*time.Hour)

	assert.Equal(t, 2, s.CleanupAll())
	assert.Equal(t, 0, s.CleanupAll())
}

func TestRemoveToleratesMissingFile(t *testing.T) {
	s, log := newTestStore(t, time.Second)
	writeArtifact(t, s, "tts_temp_1.mp3", 0)

	ok, err := s.Remove("tts_temp_1.mp3", TriggerCleanup)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Remove("tts_temp_1.mp3", TriggerCleanup)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, log.snapshot(), 1)
}

func TestScheduleDeleteRemovesAfterGrace(t *testing.T) {
	s, log := newTestStore(t, 50*time.Millisecond)
	path := writeArtifact(t, s, "tts_temp_1.mp3", 0)

	s.ScheduleDelete("tts_temp_1.mp3")
	assert.FileExists(t, path, "file must survive until the grace period elapses")

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return errors.Is(err, os.ErrNotExist)
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{TriggerDelayed}, log.snapshot())
}

func TestScheduleDeleteAfterConcurrentCleanup(t *testing.T) {
	s, log := newTestStore(t, 20*time.Millisecond)
	writeArtifact(t, s, "tts_temp_1.mp3", 0)

	s.ScheduleDelete("tts_temp_1.mp3")
	assert.Equal(t, 1, s.CleanupAll())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{TriggerCleanup}, log.snapshot())
}

func TestOpenedFileSurvivesRemoval(t *testing.T) {
	s, _ := newTestStore(t, time.Second)
	writeArtifact(t, s, "tts_temp_1.mp3", 0)

	f, a, err := s.Open("tts_temp_1.mp3")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int64(7), a.Size)

	_, err = s.Remove("tts_temp_1.mp3", TriggerCleanup)
	require.NoError(t, err)

	buf := make([]byte, 7)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ID3fake", string(buf[:n]))
}
