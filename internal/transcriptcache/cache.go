package transcriptcache

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tubescribe/internal/logging"
	"tubescribe/internal/textutil"
)

const fileExtension = ".txt"

// Entry describes one cached transcript file for operator listings.
type Entry struct {
	Key     string    `json:"key"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Cache is a directory-backed transcript store. If dir is empty the cache is
// non-functional and every operation becomes a no-op miss.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// NewCache returns a cache rooted at dir. The directory is created lazily on
// the first Store call.
func NewCache(dir string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cache{
		dir:    strings.TrimSpace(dir),
		logger: logging.NewComponentLogger(logger, "transcriptcache"),
	}
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Key builds the cache key for a video and language pair.
func Key(videoID, language string) string {
	return videoID + "_" + language
}

// Path returns the file path a transcript for the given pair would occupy.
func (c *Cache) Path(videoID, language string) string {
	return filepath.Join(c.dir, textutil.SanitizeFileName(Key(videoID, language))+fileExtension)
}

// Has reports whether a transcript is cached for the given pair.
func (c *Cache) Has(videoID, language string) bool {
	if c.dir == "" || strings.TrimSpace(videoID) == "" || strings.TrimSpace(language) == "" {
		return false
	}
	info, err := os.Stat(c.Path(videoID, language))
	return err == nil && info.Mode().IsRegular()
}

// Load returns the cached transcript for the pair. A miss yields ("", false,
// nil); the error is reserved for genuine read failures.
func (c *Cache) Load(videoID, language string) (string, bool, error) {
	if c.dir == "" || strings.TrimSpace(videoID) == "" || strings.TrimSpace(language) == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(c.Path(videoID, language))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read cached transcript: %w", err)
	}
	return string(data), true, nil
}

// Store writes a transcript for the pair, replacing any previous copy.
func (c *Cache) Store(videoID, language, text string) error {
	if strings.TrimSpace(videoID) == "" {
		return errors.New("video ID cannot be empty")
	}
	if strings.TrimSpace(language) == "" {
		return errors.New("language cannot be empty")
	}
	if c.dir == "" {
		return nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	path := c.Path(videoID, language)
	if err := writeFileAtomic(path, []byte(text)); err != nil {
		return fmt.Errorf("write cached transcript: %w", err)
	}

	c.logger.Debug("stored transcript",
		logging.String(logging.FieldVideoID, videoID),
		logging.String(logging.FieldLanguage, language),
		logging.Int("bytes", len(text)))
	return nil
}

// Remove deletes the cached transcript for the pair.
func (c *Cache) Remove(videoID, language string) error {
	if strings.TrimSpace(videoID) == "" {
		return errors.New("video ID cannot be empty")
	}
	if strings.TrimSpace(language) == "" {
		return errors.New("language cannot be empty")
	}
	if c.dir == "" {
		return nil
	}

	path := c.Path(videoID, language)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("transcript for %s/%s not cached", videoID, language)
		}
		return fmt.Errorf("remove cached transcript: %w", err)
	}

	c.logger.Debug("removed transcript",
		logging.String(logging.FieldVideoID, videoID),
		logging.String(logging.FieldLanguage, language))
	return nil
}

// Entries lists cached transcripts sorted by modification time descending.
func (c *Cache) Entries() ([]Entry, error) {
	files, err := c.transcriptFiles()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		info, err := file.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Key:     strings.TrimSuffix(file.Name(), fileExtension),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

// Clear removes every cached transcript and returns the number deleted.
func (c *Cache) Clear() (int, error) {
	files, err := c.transcriptFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, file := range files {
		if err := os.Remove(filepath.Join(c.dir, file.Name())); err != nil {
			return removed, fmt.Errorf("remove cached transcript: %w", err)
		}
		removed++
	}

	c.logger.Debug("cleared transcript cache", logging.Int("removed", removed))
	return removed, nil
}

// Prune removes cached transcripts older than the given age and returns the
// number deleted.
func (c *Cache) Prune(olderThan time.Duration) (int, error) {
	files, err := c.transcriptFiles()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, file := range files {
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, file.Name())); err != nil {
			return removed, fmt.Errorf("remove cached transcript: %w", err)
		}
		removed++
	}

	c.logger.Debug("pruned transcript cache",
		logging.Int("removed", removed),
		logging.Duration("older_than", olderThan))
	return removed, nil
}

// transcriptFiles returns the directory entries that look like cached
// transcripts. A missing cache directory counts as empty.
func (c *Cache) transcriptFiles() ([]fs.DirEntry, error) {
	if c.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache directory: %w", err)
	}

	files := make([]fs.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExtension) {
			continue
		}
		files = append(files, entry)
	}
	return files, nil
}

// writeFileAtomic writes data to path via a temp file and rename so readers
// never observe a partial transcript.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".transcript-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
