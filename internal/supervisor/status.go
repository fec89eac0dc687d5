package supervisor

import (
	"time"

	"llamactl/internal/registry"
	"llamactl/internal/schema"
	"llamactl/pkg/types"
)

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status builds the composite read model for GET /server-status. It is
// recomputed fresh on every call from the state variable and the log buffer.
func (s *Supervisor) Status() types.StatusResponse {
	s.mu.Lock()
	st := s.state
	var pid int
	var uptime int64
	if s.cmd != nil && s.cmd.Process != nil {
		pid = s.cmd.Process.Pid
		uptime = int64(time.Since(s.startedAt).Seconds())
	}
	s.mu.Unlock()
	return types.StatusResponse{
		Status:         string(st),
		Logs:           s.logs.snapshot(s.cfg.LogWindow),
		PID:            pid,
		UptimeSeconds:  uptime,
		ServerTimeUnix: time.Now().Unix(),
	}
}

// FlagDefinitions exposes the flag catalog for GET /flag-definitions.
func (s *Supervisor) FlagDefinitions() []schema.FlagDef {
	return s.cfg.Schema.All()
}

// ListModels scans the models directory on each call; the directory contents
// are owned by an external installer and may change between calls.
func (s *Supervisor) ListModels() ([]types.Model, error) {
	return registry.LoadDir(s.cfg.ModelsDir)
}

// Ready reports whether the supervisor can accept commands. A running child
// is not required; child readiness is the child's own health endpoint.
func (s *Supervisor) Ready() bool {
	return s.cfg.Schema != nil
}
