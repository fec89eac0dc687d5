//go:build !windows

package supervisor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"llamactl/internal/schema"
	"llamactl/pkg/types"
)

const testCatalog = `
- name: model
  type: path
  section: model
- name: threads
  type: number
  default: 4
- name: verbose
  type: boolean
  default: false
`

// writeFakeServer writes an executable shell script standing in for
// llama-server and returns its path.
func writeFakeServer(t *testing.T, script string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "llama-server")
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fake server: %v", err)
	}
	return p
}

func modelsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.gguf"), []byte("gguf"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return dir
}

func newTestSupervisor(t *testing.T, bin, models string) (*Supervisor, *MemoryPublisher) {
	t.Helper()
	reg, err := schema.Parse([]byte(testCatalog), "yaml")
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	pub := NewMemoryPublisher()
	s := New(Config{ServerBin: bin, ModelsDir: models, Schema: reg, Publisher: pub})
	return s, pub
}

func startConfig(t *testing.T, models string) map[string]any {
	t.Helper()
	return map[string]any{"model": filepath.Join(models, "tiny.gguf")}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", d)
}

func hasExitEntry(s *Supervisor) bool {
	for _, e := range s.Status().Logs {
		if e.Type == types.LogKindExit {
			return true
		}
	}
	return false
}

func TestStartCapturesOutputAndExit(t *testing.T) {
	models := modelsDir(t)
	bin := writeFakeServer(t, "echo hello from stdout\necho oops 1>&2\nexit 0\n")
	s, pub := newTestSupervisor(t, bin, models)

	if err := s.Start(startConfig(t, models)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if st := s.State(); st == StateStopped {
		t.Fatalf("state=%s right after start", st)
	}
	waitFor(t, 5*time.Second, func() bool { return s.State() == StateStopped })

	var sawStdout, sawStderr, sawExit bool
	for _, e := range s.Status().Logs {
		switch {
		case e.Type == types.LogKindStdout && e.Message == "hello from stdout":
			sawStdout = true
		case e.Type == types.LogKindStderr && e.Message == "oops":
			sawStderr = true
		case e.Type == types.LogKindExit:
			sawExit = true
			if e.Message != "process exited with code 0" {
				t.Fatalf("exit message: %q", e.Message)
			}
		}
	}
	if !sawStdout || !sawStderr || !sawExit {
		t.Fatalf("stdout=%v stderr=%v exit=%v logs=%v", sawStdout, sawStderr, sawExit, s.Status().Logs)
	}

	var names []string
	for _, e := range pub.Events() {
		names = append(names, e.Name)
	}
	if len(names) < 2 || names[0] != "spawn_start" || names[len(names)-1] != "spawn_exit" {
		t.Fatalf("events=%v", names)
	}
}

func TestAbnormalExitRecordsCode(t *testing.T) {
	models := modelsDir(t)
	bin := writeFakeServer(t, "exit 1\n")
	s, _ := newTestSupervisor(t, bin, models)

	if err := s.Start(startConfig(t, models)); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return s.State() == StateStopped })
	found := false
	for _, e := range s.Status().Logs {
		if e.Type == types.LogKindExit && e.Message == "process exited with code 1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no exit entry with code 1: %v", s.Status().Logs)
	}
}

func TestStartWhileRunningRefused(t *testing.T) {
	models := modelsDir(t)
	bin := writeFakeServer(t, "sleep 30\n")
	s, _ := newTestSupervisor(t, bin, models)
	t.Cleanup(func() { _ = s.Stop() })

	if err := s.Start(startConfig(t, models)); err != nil {
		t.Fatalf("start: %v", err)
	}
	err := s.Start(startConfig(t, models))
	if !IsAlreadyRunning(err) {
		t.Fatalf("expected already-running error, got %v", err)
	}
	if st := s.State(); st != StateRunning {
		t.Fatalf("state changed by refused start: %s", st)
	}
}

func TestStopSignalsProcessGroup(t *testing.T) {
	models := modelsDir(t)
	// the child spawns its own subprocess; a group signal reclaims both
	bin := writeFakeServer(t, "sleep 30 &\nsleep 30\n")
	s, pub := newTestSupervisor(t, bin, models)

	if err := s.Start(startConfig(t, models)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	// stop returns immediately; the exit is observed asynchronously
	waitFor(t, 5*time.Second, func() bool { return s.State() == StateStopped })
	if !hasExitEntry(s) {
		t.Fatalf("no exit entry after stop")
	}
	sawStop := false
	for _, e := range pub.Events() {
		if e.Name == "stop_signal" {
			sawStop = true
		}
	}
	if !sawStop {
		t.Fatalf("no stop_signal event: %v", pub.Events())
	}
}

func TestStopWhileStoppedRefused(t *testing.T) {
	models := modelsDir(t)
	s, _ := newTestSupervisor(t, writeFakeServer(t, "exit 0\n"), models)
	if err := s.Stop(); !IsNotRunning(err) {
		t.Fatalf("expected not-running error, got %v", err)
	}
}

func TestStartBinaryNotFound(t *testing.T) {
	models := modelsDir(t)
	s, _ := newTestSupervisor(t, filepath.Join(t.TempDir(), "missing"), models)
	err := s.Start(startConfig(t, models))
	if !IsBinaryNotFound(err) {
		t.Fatalf("expected binary-not-found error, got %v", err)
	}
	if s.State() != StateStopped {
		t.Fatalf("state mutated by failed precondition")
	}
}

func TestStartNoModelsDir(t *testing.T) {
	empty := t.TempDir()
	s, _ := newTestSupervisor(t, writeFakeServer(t, "exit 0\n"), empty)
	err := s.Start(map[string]any{"model": "/x.gguf"})
	if err == nil {
		t.Fatalf("expected error for empty models dir")
	}
	if s.State() != StateStopped {
		t.Fatalf("state mutated by failed precondition")
	}
}

func TestStartNoModelSelected(t *testing.T) {
	models := modelsDir(t)
	s, _ := newTestSupervisor(t, writeFakeServer(t, "exit 0\n"), models)
	err := s.Start(map[string]any{"threads": float64(8)})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if s.State() != StateStopped {
		t.Fatalf("state mutated by failed validation")
	}
}

func TestStartBadConfigValue(t *testing.T) {
	models := modelsDir(t)
	s, _ := newTestSupervisor(t, writeFakeServer(t, "exit 0\n"), models)
	err := s.Start(map[string]any{"model": filepath.Join(models, "tiny.gguf"), "threads": "eight"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if s.State() != StateStopped {
		t.Fatalf("state mutated by failed validation")
	}
}

func TestSpawnFailureRevertsToStopped(t *testing.T) {
	models := modelsDir(t)
	// present but not executable
	p := filepath.Join(t.TempDir(), "llama-server")
	if err := os.WriteFile(p, []byte("not a binary"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, _ := newTestSupervisor(t, p, models)
	err := s.Start(startConfig(t, models))
	if !IsSpawn(err) {
		t.Fatalf("expected spawn error, got %v", err)
	}
	if s.State() != StateStopped {
		t.Fatalf("state=%s after spawn failure", s.State())
	}
}

func TestStatusShape(t *testing.T) {
	models := modelsDir(t)
	bin := writeFakeServer(t, "sleep 30\n")
	s, _ := newTestSupervisor(t, bin, models)
	t.Cleanup(func() { _ = s.Stop() })

	st := s.Status()
	if st.Status != string(StateStopped) || st.PID != 0 {
		t.Fatalf("status=%+v", st)
	}
	if err := s.Start(startConfig(t, models)); err != nil {
		t.Fatalf("start: %v", err)
	}
	st = s.Status()
	if st.Status != string(StateRunning) || st.PID == 0 {
		t.Fatalf("status=%+v", st)
	}
	if st.ServerTimeUnix == 0 {
		t.Fatalf("server time missing")
	}
}

func TestClearLogs(t *testing.T) {
	models := modelsDir(t)
	bin := writeFakeServer(t, "echo one\necho two\nexit 0\n")
	s, _ := newTestSupervisor(t, bin, models)
	if err := s.Start(startConfig(t, models)); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return s.State() == StateStopped })
	if len(s.Status().Logs) == 0 {
		t.Fatalf("expected log entries")
	}
	s.ClearLogs()
	if len(s.Status().Logs) != 0 {
		t.Fatalf("logs survived clear: %v", s.Status().Logs)
	}
}

func TestRestartAfterExit(t *testing.T) {
	models := modelsDir(t)
	bin := writeFakeServer(t, "exit 0\n")
	s, _ := newTestSupervisor(t, bin, models)
	for i := 0; i < 2; i++ {
		if err := s.Start(startConfig(t, models)); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		waitFor(t, 5*time.Second, func() bool { return s.State() == StateStopped })
	}
}

func TestListModelsAndFlagDefinitions(t *testing.T) {
	models := modelsDir(t)
	s, _ := newTestSupervisor(t, writeFakeServer(t, "exit 0\n"), models)
	got, err := s.ListModels()
	if err != nil || len(got) != 1 || got[0].ID != "tiny.gguf" {
		t.Fatalf("models=%v err=%v", got, err)
	}
	defs := s.FlagDefinitions()
	if len(defs) != 3 || defs[0].Name != "model" {
		t.Fatalf("defs=%v", defs)
	}
	if !s.Ready() {
		t.Fatalf("supervisor not ready")
	}
}
