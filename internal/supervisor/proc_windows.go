//go:build windows

package supervisor

import (
	"os"
	"syscall"
)

// sysProcAttr is a no-op on Windows; there is no process-group equivalent of
// Setpgid, so only the immediate child is signaled.
func sysProcAttr() *syscall.SysProcAttr { return nil }

// terminateGroup kills the child process by pid.
func terminateGroup(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}
