//go:build !windows

package supervisor

import "syscall"

// sysProcAttr places the child in its own process group so a stop signal
// reaches any subprocesses it spawned.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// terminateGroup sends SIGTERM to the process group led by pid.
// Negative PID addresses the whole group.
func terminateGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGTERM)
}
