package deps

import (
	"os"
	"path/filepath"
	"testing"

	"tubescribe/internal/config"
	"tubescribe/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Command != present {
		t.Fatalf("expected resolved command %q, got %q", present, results[0].Command)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available {
		t.Fatalf("expected unset command to be unavailable")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for unset command: %s", results[2].Detail)
	}
	if !results[2].Optional {
		t.Fatalf("expected optional flag carried through")
	}
}

func TestRequirementsConfiguredBinary(t *testing.T) {
	tmp := t.TempDir()
	binaryPath := filepath.Join(tmp, "yt-dlp")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(binaryPath, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	cfg := config.Default()
	cfg.YtDlp.Binary = binaryPath

	results := CheckBinaries(Requirements(&cfg))
	if len(results) != 1 {
		t.Fatalf("expected one requirement, got %d", len(results))
	}
	if results[0].Name != YtDlpName {
		t.Fatalf("unexpected requirement name: %s", results[0].Name)
	}
	if !results[0].Available {
		t.Fatalf("expected configured binary to resolve, got detail %q", results[0].Detail)
	}
	if results[0].Command != binaryPath {
		t.Fatalf("expected command %q, got %q", binaryPath, results[0].Command)
	}
}

func TestRequirementsResolveThroughPath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	results := CheckBinaries(Requirements(cfg))
	if len(results) != 1 {
		t.Fatalf("expected one requirement, got %d", len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected PATH lookup to succeed, got detail %q", results[0].Detail)
	}
	stub := filepath.Join(testsupport.BaseDir(cfg), "bin", "yt-dlp")
	if results[0].Command != stub {
		t.Fatalf("expected resolved path %q, got %q", stub, results[0].Command)
	}
}

func TestRequirementsMissingBinary(t *testing.T) {
	t.Setenv("PATH", "")

	results := CheckBinaries(Requirements(nil))
	if len(results) != 1 {
		t.Fatalf("expected one requirement, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("expected resolution to fail with empty PATH")
	}
	if results[0].Detail == "" {
		t.Fatal("expected detail message when yt-dlp is unavailable")
	}
	if results[0].Command != YtDlpName {
		t.Fatalf("expected default command name, got %q", results[0].Command)
	}
}
