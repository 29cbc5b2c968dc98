package journal_test

import (
	"context"
	"testing"
	"time"

	"tubescribe/internal/journal"
	"tubescribe/internal/testsupport"
)

func TestAppendAndRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	records := []journal.Record{
		{Operation: "download_subtitle", VideoID: "vid-1", Language: "en", Status: journal.StatusOK, DurationMS: 1200},
		{Operation: "get_video_info", VideoID: "vid-2", Status: journal.StatusError, ErrorKind: "extraction_failed"},
		{Operation: "download_subtitle", VideoID: "vid-3", Language: "en (auto)", CacheHit: true, Status: journal.StatusOK},
	}
	for _, rec := range records {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	if recent[0].VideoID != "vid-3" || recent[2].VideoID != "vid-1" {
		t.Fatalf("expected newest first, got %q then %q", recent[0].VideoID, recent[2].VideoID)
	}
	if !recent[0].CacheHit {
		t.Fatal("expected cache hit flag to round-trip")
	}
	if recent[0].Language != "en (auto)" {
		t.Fatalf("expected auto language preserved, got %q", recent[0].Language)
	}
	if recent[1].Status != journal.StatusError || recent[1].ErrorKind != "extraction_failed" {
		t.Fatalf("expected error record intact, got %+v", recent[1])
	}
	if recent[2].DurationMS != 1200 {
		t.Fatalf("expected duration round-trip, got %d", recent[2].DurationMS)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Fatal("expected created timestamp to be filled in")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := journal.Record{Operation: "download_subtitle", VideoID: "vid", Status: journal.StatusOK}
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
}

func TestAppendValidatesRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	if err := store.Append(ctx, journal.Record{Status: journal.StatusOK}); err == nil {
		t.Fatal("expected error for missing operation")
	}
	if err := store.Append(ctx, journal.Record{Operation: "x", Status: "weird"}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestAppendPreservesExplicitTimestamp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	rec := journal.Record{Operation: "download_subtitle", Status: journal.StatusOK, CreatedAt: created}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	recent, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 || !recent[0].CreatedAt.Equal(created) {
		t.Fatalf("expected timestamp %v, got %+v", created, recent)
	}
}

func TestClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Append(ctx, journal.Record{Operation: "x", Status: journal.StatusOK}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected empty journal, got %d records", len(recent))
	}
}

func TestNilStoreIsDisabled(t *testing.T) {
	var store *journal.Store

	if err := store.Append(context.Background(), journal.Record{Operation: "x", Status: journal.StatusOK}); err != nil {
		t.Fatalf("nil Append should be a no-op: %v", err)
	}
	recent, err := store.Recent(context.Background(), 5)
	if err != nil || recent != nil {
		t.Fatalf("nil Recent should return nothing, got %v err=%v", recent, err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil Close should be a no-op: %v", err)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	if err := store.Append(context.Background(), journal.Record{Operation: "x", Status: journal.StatusOK}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenJournal(t, cfg)
	recent, err := reopened.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected record to survive reopen, got %d", len(recent))
	}
}
