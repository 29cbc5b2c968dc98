package transcriptcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheStoreAndLoad(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	if cache.Has("dQw4w9WgXcQ", "en") {
		t.Fatal("Has should be false before Store")
	}
	if err := cache.Store("dQw4w9WgXcQ", "en", "hello world\nsecond line"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if !cache.Has("dQw4w9WgXcQ", "en") {
		t.Fatal("Has should be true after Store")
	}

	text, ok, err := cache.Load("dQw4w9WgXcQ", "en")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Load failed to find stored transcript")
	}
	if text != "hello world\nsecond line" {
		t.Fatalf("transcript mismatch: got %q", text)
	}
}

func TestCacheLoadMiss(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	text, ok, err := cache.Load("dQw4w9WgXcQ", "en")
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if ok || text != "" {
		t.Fatalf("expected miss, got ok=%v text=%q", ok, text)
	}
}

func TestCacheKeysAutoAndManualIndependently(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	if err := cache.Store("dQw4w9WgXcQ", "en (auto)", "auto transcript"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if cache.Has("dQw4w9WgXcQ", "en") {
		t.Fatal("auto entry should not satisfy the manual key")
	}

	text, ok, err := cache.Load("dQw4w9WgXcQ", "en (auto)")
	if err != nil || !ok {
		t.Fatalf("expected auto hit, got ok=%v err=%v", ok, err)
	}
	if text != "auto transcript" {
		t.Fatalf("auto transcript mismatch: got %q", text)
	}
}

func TestCacheStoreOverwrites(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	if err := cache.Store("abc", "en", "first"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Store("abc", "en", "second"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	text, ok, err := cache.Load("abc", "en")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if text != "second" {
		t.Fatalf("expected overwrite, got %q", text)
	}
}

func TestCacheStoreValidatesInput(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	if err := cache.Store("", "en", "text"); err == nil {
		t.Fatal("expected error for empty video ID")
	}
	if err := cache.Store("abc", "  ", "text"); err == nil {
		t.Fatal("expected error for blank language")
	}
}

func TestCacheEmptyDirIsNoop(t *testing.T) {
	cache := NewCache("", nil)

	if err := cache.Store("abc", "en", "text"); err != nil {
		t.Fatalf("no-op Store should not error: %v", err)
	}
	if cache.Has("abc", "en") {
		t.Fatal("no-op cache should never report a hit")
	}
	if _, ok, err := cache.Load("abc", "en"); ok || err != nil {
		t.Fatalf("no-op Load should miss cleanly, got ok=%v err=%v", ok, err)
	}
}

func TestCacheRemove(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	if err := cache.Store("abc", "en", "text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Remove("abc", "en"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if cache.Has("abc", "en") {
		t.Fatal("entry should be gone after Remove")
	}
	if err := cache.Remove("abc", "en"); err == nil {
		t.Fatal("removing a missing entry should error")
	}
}

func TestCacheEntriesNewestFirst(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	if err := cache.Store("older", "en", "older text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Store("newer", "en", "newer text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(cache.Path("older", "en"), past, past); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	entries, err := cache.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "newer_en" || entries[1].Key != "older_en" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].Key, entries[1].Key)
	}
	if entries[0].Size != int64(len("newer text")) {
		t.Fatalf("expected size %d, got %d", len("newer text"), entries[0].Size)
	}
}

func TestCacheEntriesIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, nil)

	if err := cache.Store("abc", "en", "text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	entries, err := cache.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "abc_en" {
		t.Fatalf("expected only the transcript entry, got %+v", entries)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, nil)

	if err := cache.Store("abc", "en", "text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Store("def", "de", "text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	removed, err := cache.Clear()
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.md")); err != nil {
		t.Fatalf("Clear should leave foreign files alone: %v", err)
	}
}

func TestCachePrune(t *testing.T) {
	cache := NewCache(t.TempDir(), nil)

	if err := cache.Store("old", "en", "old text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Store("fresh", "en", "fresh text"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(cache.Path("old", "en"), past, past); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	removed, err := cache.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned, got %d", removed)
	}
	if cache.Has("old", "en") {
		t.Fatal("old entry should be pruned")
	}
	if !cache.Has("fresh", "en") {
		t.Fatal("fresh entry should survive")
	}
}

func TestCacheMissingDirectoryCountsAsEmpty(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "never-created"), nil)

	entries, err := cache.Entries()
	if err != nil {
		t.Fatalf("Entries on missing dir should not error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
	if removed, err := cache.Clear(); err != nil || removed != 0 {
		t.Fatalf("Clear on missing dir should be a no-op, got removed=%d err=%v", removed, err)
	}
}
