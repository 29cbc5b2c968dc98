package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tubescribe/internal/config"
)

// Record statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Record is one journaled fetch operation.
type Record struct {
	ID         int64     `json:"id"`
	Operation  string    `json:"operation"`
	VideoID    string    `json:"video_id"`
	Language   string    `json:"language,omitempty"`
	CacheHit   bool      `json:"cache_hit"`
	Status     string    `json:"status"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store manages journal persistence backed by SQLite. A nil Store is a valid
// disabled journal: every method becomes a no-op.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open initializes or connects to the journal database at cfg.Journal.Path.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Journal.Path
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Append inserts a record. The created timestamp is filled in when unset.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if s == nil || s.db == nil {
		return nil
	}
	if strings.TrimSpace(rec.Operation) == "" {
		return errors.New("journal record requires an operation")
	}
	if rec.Status != StatusOK && rec.Status != StatusError {
		return fmt.Errorf("journal record has unknown status %q", rec.Status)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO journal_entries (
            operation, video_id, language, cache_hit,
            status, error_kind, duration_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Operation,
		rec.VideoID,
		rec.Language,
		boolToInt(rec.CacheHit),
		rec.Status,
		rec.ErrorKind,
		rec.DurationMS,
		created.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert journal record: %w", err)
	}
	return nil
}

// Recent returns the newest records first, at most limit of them. A
// non-positive limit selects a default page of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, operation, video_id, language, cache_hit,
            status, error_kind, duration_ms, created_at
        FROM journal_entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec      Record
			cacheHit int
			created  string
		)
		if err := rows.Scan(&rec.ID, &rec.Operation, &rec.VideoID, &rec.Language,
			&cacheHit, &rec.Status, &rec.ErrorKind, &rec.DurationMS, &created); err != nil {
			return nil, fmt.Errorf("scan journal record: %w", err)
		}
		rec.CacheHit = cacheHit != 0
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal records: %w", err)
	}
	return records, nil
}

// Clear deletes all journal records and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res, err := s.execWithRetry(ctx, "DELETE FROM journal_entries")
	if err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
