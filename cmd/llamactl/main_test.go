package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"llamactl/internal/schema"
)

func TestSchemaCheckValidCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := "- name: model\n  type: path\n  section: model\n- name: threads\n  type: number\n  default: -1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"schema", "check", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("schema check failed: %v", err)
	}
	if !strings.Contains(out.String(), "2 flags") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestSchemaCheckRejectsBadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := "- name: mirostat\n  type: choice\n  section: sampling\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"schema", "check", path})
	err := root.Execute()
	if err == nil {
		t.Fatal("expected error for choice flag without options")
	}
	if !schema.IsSchemaError(err) || !strings.Contains(err.Error(), "has no options") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRegistryEmbeddedDefault(t *testing.T) {
	reg, err := loadRegistry("")
	if err != nil {
		t.Fatalf("loadRegistry: %v", err)
	}
	if reg.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}
}
