package supervisor

import (
	"os"
	"os/exec"
	"path/filepath"

	"llamactl/internal/common/fsutil"
)

// locateServerBin resolves the llama-server executable. An explicit path must
// exist as-is; otherwise common install locations and PATH are searched.
// Returns "" when nothing is found.
func locateServerBin(explicit string) string {
	if explicit != "" {
		if fsutil.IsFile(explicit) {
			return explicit
		}
		return ""
	}
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, "apps", "llama.cpp", "build", "bin", "llama-server"),
		filepath.Join(home, ".local", "bin", "llama-server"),
		"/usr/local/bin/llama-server",
		"/opt/homebrew/bin/llama-server",
	}
	for _, p := range candidates {
		if fsutil.IsFile(p) {
			return p
		}
	}
	if lp, err := exec.LookPath("llama-server"); err == nil {
		return lp
	}
	return ""
}
