package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tubescribe/internal/services"
)

func TestConsoleHandlerRendersComponentAndAttrs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := New(Options{Level: "info", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	scoped := NewComponentLogger(logger, "transcripts")
	scoped.Info("fetch complete", String(FieldVideoID, "dQw4w9WgXcQ"), Bool(FieldCacheHit, true))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, "INFO transcripts: fetch complete") {
		t.Fatalf("expected component prefix in %q", line)
	}
	if !strings.Contains(line, "video_id=dQw4w9WgXcQ") {
		t.Fatalf("expected video_id attr in %q", line)
	}
	if !strings.Contains(line, "cache_hit=true") {
		t.Fatalf("expected cache_hit attr in %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := New(Options{Level: "debug", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("probe", String(FieldLanguage, "en (auto)"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `language="en (auto)"`) {
		t.Fatalf("expected quoted language value in %q", string(data))
	}
}

func TestJSONHandlerUsesCanonicalKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("download failed", String(FieldVideoID, "abc123DEF45"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["msg"] != "download failed" {
		t.Fatalf("expected msg key, got %v", payload)
	}
	if payload["level"] != "error" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload["video_id"] != "abc123DEF45" {
		t.Fatalf("expected video_id attr, got %v", payload)
	}
}

func TestWithContextAddsRequestFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := New(Options{Level: "info", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithVideoID(context.Background(), "dQw4w9WgXcQ")
	ctx = services.WithOperation(ctx, "video-info")
	WithContext(ctx, logger).Info("metadata loaded")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "video_id=dQw4w9WgXcQ") || !strings.Contains(line, "operation=video-info") {
		t.Fatalf("expected context fields in %q", line)
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := New(Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Info("ignored")
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("expected nop logger to be disabled")
	}
}
