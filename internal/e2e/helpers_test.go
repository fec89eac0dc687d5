//go:build !windows

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"llamactl/internal/httpapi"
	"llamactl/internal/schema"
	"llamactl/internal/supervisor"
	"llamactl/pkg/types"
)

// createTempModelsDir creates a temporary directory populated with empty .gguf files
// and returns the directory path and the list of model IDs (filenames).
func createTempModelsDir(t *testing.T, names ...string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return dir, names
}

// writeFakeServer writes an executable shell script that stands in for
// llama-server and returns its path.
func writeFakeServer(t *testing.T, script string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "llama-server")
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fake server: %v", err)
	}
	return p
}

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	data := []byte(`- name: model
  type: path
  section: model
- name: threads
  type: number
  default: -1
- name: verbose
  type: boolean
  default: false
`)
	reg, err := schema.Parse(data, "yaml")
	if err != nil {
		t.Fatalf("parse registry: %v", err)
	}
	return reg
}

func newServer(t *testing.T, serverBin, modelsDir string) (*httptest.Server, *supervisor.Supervisor) {
	t.Helper()
	sup := supervisor.New(supervisor.Config{
		ServerBin: serverBin,
		ModelsDir: modelsDir,
		Schema:    testRegistry(t),
	})
	srv := httptest.NewServer(httpapi.NewMux(sup))
	t.Cleanup(srv.Close)
	return srv, sup
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	return resp
}

func getStatus(t *testing.T, base string) types.StatusResponse {
	t.Helper()
	resp, err := http.Get(base + "/server-status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	var st types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return st
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// waitForStatus polls /server-status until cond returns true or the deadline passes.
func waitForStatus(t *testing.T, base string, timeout time.Duration, cond func(types.StatusResponse) bool) types.StatusResponse {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		st := getStatus(t, base)
		if cond(st) {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline; last status=%q logs=%d", st.Status, len(st.Logs))
		}
		time.Sleep(10 * time.Millisecond)
	}
}
