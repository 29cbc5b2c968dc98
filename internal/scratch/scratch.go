package scratch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tubescribe/internal/logging"
)

const (
	sessionPrefix = "fetch-"
	lockFileName  = ".sweep.lock"

	lockRetryDelay = 50 * time.Millisecond
)

// ErrSweepBusy indicates the scratch root is in use, either by another sweep
// or by an active fetch session.
var ErrSweepBusy = errors.New("scratch directory busy")

// Manager hands out fetch sessions under a shared scratch root.
type Manager struct {
	root   string
	logger *slog.Logger
}

// SweepResult summarizes one sweep over the scratch root.
type SweepResult struct {
	Removed        int
	ReclaimedBytes int64
	Failed         []string
}

// NewManager returns a manager rooted at dir.
func NewManager(dir string, logger *slog.Logger) (*Manager, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("scratch directory cannot be empty")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		root:   dir,
		logger: logging.NewComponentLogger(logger, "scratch"),
	}, nil
}

// Root returns the scratch root directory.
func (m *Manager) Root() string {
	return m.root
}

// Begin creates a fresh uniquely named session directory. The session holds a
// shared lock on the scratch root until Close so a concurrent Sweep cannot
// delete it mid-fetch.
func (m *Manager) Begin(ctx context.Context) (*Session, error) {
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}

	lock := flock.New(m.lockPath())
	ok, err := lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire scratch lock: %w", err)
	}
	if !ok {
		return nil, ErrSweepBusy
	}

	dir := filepath.Join(m.root, sessionPrefix+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("create scratch session: %w", err)
	}

	m.logger.Debug("opened scratch session", logging.String("dir", dir))
	return &Session{dir: dir, lock: lock, logger: m.logger}, nil
}

// Sweep removes leftover session directories older than maxAge under the
// root; a maxAge of zero removes every session. It refuses to run while
// sessions are active or another sweep holds the lock.
func (m *Manager) Sweep(maxAge time.Duration) (SweepResult, error) {
	var result SweepResult

	if _, err := os.Stat(m.root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("stat scratch root: %w", err)
	}

	lock := flock.New(m.lockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("acquire scratch lock: %w", err)
	}
	if !ok {
		return result, ErrSweepBusy
	}
	defer releaseLock(lock)

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return result, fmt.Errorf("read scratch root: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), sessionPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			result.Failed = append(result.Failed, entry.Name())
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		dir := filepath.Join(m.root, entry.Name())
		size := dirSize(dir)
		if err := os.RemoveAll(dir); err != nil {
			result.Failed = append(result.Failed, entry.Name())
			continue
		}
		result.Removed++
		result.ReclaimedBytes += size
	}

	m.logger.Debug("swept scratch root",
		logging.Int("removed", result.Removed),
		logging.Int64("reclaimed_bytes", result.ReclaimedBytes),
		logging.Int("failed", len(result.Failed)))
	return result, nil
}

func (m *Manager) lockPath() string {
	return filepath.Join(m.root, lockFileName)
}

// Session is one fetch working directory. Close removes it regardless of how
// the fetch ended.
type Session struct {
	dir    string
	lock   *flock.Flock
	logger *slog.Logger
	closed bool
}

// Dir returns the session directory.
func (s *Session) Dir() string {
	return s.dir
}

// Base returns a path inside the session directory for the given name. It is
// handed to the download tool as the output template base.
func (s *Session) Base(name string) string {
	return filepath.Join(s.dir, name)
}

// Close removes the session directory and releases the shared lock. It is
// safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	removeErr := os.RemoveAll(s.dir)
	releaseLock(s.lock)
	if removeErr != nil {
		return fmt.Errorf("remove scratch session: %w", removeErr)
	}

	s.logger.Debug("closed scratch session", logging.String("dir", s.dir))
	return nil
}

func releaseLock(lock *flock.Flock) {
	if lock != nil {
		_ = lock.Unlock()
	}
}

// dirSize sums the regular file sizes under dir. Unreadable entries count as
// zero.
func dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}
