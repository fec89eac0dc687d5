package supervisor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocateExplicitPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "llama-server")
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := locateServerBin(p); got != p {
		t.Fatalf("got %q", got)
	}
}

func TestLocateExplicitMissing(t *testing.T) {
	// an explicit path that does not exist must not fall back to discovery
	if got := locateServerBin(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestLocateExplicitDirectory(t *testing.T) {
	if got := locateServerBin(t.TempDir()); got != "" {
		t.Fatalf("got %q", got)
	}
}
