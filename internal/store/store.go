// Package store owns the directory of transient synthesized audio files and
// every path that deletes them: the age sweep, explicit cleanup and the
// delayed removal scheduled after a file is served.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	Prefix    = "tts_temp_"
	Extension = ".mp3"

	DefaultMaxAge = time.Hour
	DefaultGrace  = 30 * time.Second
)

// Removal triggers reported to Config.OnRemove.
const (
	TriggerSweep   = "age_sweep"
	TriggerCleanup = "explicit"
	TriggerDelayed = "post_serve"
	TriggerDiscard = "discard"
	TriggerInline  = "inline"
)

var (
	ErrNotFound    = errors.New("audio file not found")
	ErrInvalidName = errors.New("invalid audio file name")
)

// Artifact is a generated audio file on disk.
type Artifact struct {
	Name      string
	Path      string
	Size      int64
	CreatedAt time.Time
}

type Config struct {
	Dir    string
	MaxAge time.Duration
	Grace  time.Duration
	// OnRemove is called once per file actually deleted, with the trigger name.
	OnRemove func(trigger string)
}

// Store is safe for concurrent use. It keeps no in-memory index; the
// directory is the only state, so every deletion tolerates a missing file.
type Store struct {
	dir      string
	maxAge   time.Duration
	grace    time.Duration
	onRemove func(string)
	log      *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Store, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return nil, fmt.Errorf("audio directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.Grace < 0 {
		cfg.Grace = DefaultGrace
	}
	if log == nil {
		log = zap.NewNop()
	}
	onRemove := cfg.OnRemove
	if onRemove == nil {
		onRemove = func(string) {}
	}
	return &Store{
		dir:      dir,
		maxAge:   cfg.MaxAge,
		grace:    cfg.Grace,
		onRemove: onRemove,
		log:      log.Named("store"),
	}, nil
}

func (s *Store) Dir() string { return s.dir }

// NewName returns a fresh artifact name: prefix, unix seconds, random suffix.
// The suffix keeps two requests in the same second from sharing a file.
func (s *Store) NewName(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return Prefix + strconv.FormatInt(now.Unix(), 10) + "_" + suffix + Extension
}

// IsGenerated reports whether name looks like a file this store created.
func IsGenerated(name string) bool {
	return strings.HasPrefix(name, Prefix) && strings.HasSuffix(name, Extension)
}

// Path resolves name inside the store directory, rejecting anything that is
// not a bare generated file name.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || !IsGenerated(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Stat returns the artifact if it currently exists on disk.
func (s *Store) Stat(name string) (Artifact, error) {
	path, err := s.Path(name)
	if err != nil {
		return Artifact{}, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Artifact{}, ErrNotFound
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return Artifact{}, ErrNotFound
	}
	return Artifact{Name: name, Path: path, Size: info.Size(), CreatedAt: info.ModTime()}, nil
}

// Open returns the artifact opened for reading.
func (s *Store) Open(name string) (*os.File, Artifact, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, Artifact{}, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Artifact{}, ErrNotFound
	}
	if err != nil {
		return nil, Artifact{}, fmt.Errorf("open %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Artifact{}, fmt.Errorf("stat %s: %w", name, err)
	}
	return f, Artifact{Name: name, Path: path, Size: info.Size(), CreatedAt: info.ModTime()}, nil
}

// Remove deletes name. A file that is already gone counts as removed=false, not an error.
func (s *Store) Remove(name, trigger string) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	s.onRemove(trigger)
	return true, nil
}

// Sweep removes generated files older than the configured max age.
// Individual failures are logged and skipped.
func (s *Store) Sweep(now time.Time) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("sweep: read dir failed", zap.String("dir", s.dir), zap.Error(err))
		}
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !IsGenerated(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Gone between ReadDir and Info.
			continue
		}
		if now.Sub(info.ModTime()) <= s.maxAge {
			continue
		}
		ok, err := s.Remove(e.Name(), TriggerSweep)
		if err != nil {
			s.log.Warn("sweep: remove failed", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		if ok {
			removed++
			s.log.Debug("sweep: removed expired file", zap.String("file", e.Name()))
		}
	}
	if removed > 0 {
		s.log.Info("sweep: removed expired files", zap.Int("count", removed))
	}
	return removed
}

// CleanupAll removes every generated file regardless of age.
func (s *Store) CleanupAll() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("cleanup: read dir failed", zap.String("dir", s.dir), zap.Error(err))
		}
		return 0
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !IsGenerated(e.Name()) {
			continue
		}
		ok, err := s.Remove(e.Name(), TriggerCleanup)
		if err != nil {
			s.log.Warn("cleanup: remove failed", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		if ok {
			removed++
		}
	}
	s.log.Info("cleanup: removed generated files", zap.Int("count", removed))
	return removed
}

// ScheduleDelete removes name after the grace period. It returns immediately;
// the returned timer may be stopped to cancel the removal.
func (s *Store) ScheduleDelete(name string) *time.Timer {
	return time.AfterFunc(s.grace, func() {
		ok, err := s.Remove(name, TriggerDelayed)
		switch {
		case err != nil:
			s.log.Warn("delayed delete failed", zap.String("file", name), zap.Error(err))
		case ok:
			s.log.Debug("delayed delete removed file", zap.String("file", name))
		}
	})
}
