package supervisor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"llamactl/internal/args"
	"llamactl/internal/registry"
	"llamactl/pkg/types"
)

// State represents the lifecycle state of the supervised child.
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
)

// Supervisor owns the single supervised llama-server child process.
type Supervisor struct {
	cfg  Config
	log  zerolog.Logger
	pub  EventPublisher
	logs *logBuffer

	mu        sync.Mutex
	state     State
	cmd       *exec.Cmd
	startedAt time.Time
}

// Start validates preconditions, builds the argument list and spawns the
// child. It returns as soon as the spawn has been issued; readiness of the
// server itself is not probed, a successful spawn is reported as running.
// Precondition failures never mutate state.
func (s *Supervisor) Start(cfg map[string]any) error {
	s.mu.Lock()
	if s.state != StateStopped {
		st := s.state
		s.mu.Unlock()
		return ErrAlreadyRunning(st)
	}

	bin := locateServerBin(s.cfg.ServerBin)
	if bin == "" {
		s.mu.Unlock()
		return ErrBinaryNotFound("llama-server not found: set --server-bin or install llama.cpp")
	}
	models, err := registry.LoadDir(s.cfg.ModelsDir)
	if err != nil {
		s.mu.Unlock()
		return args.ErrValidation("models directory unreadable: " + err.Error())
	}
	if len(models) == 0 {
		s.mu.Unlock()
		return args.ErrValidation("no model files found in " + s.cfg.ModelsDir)
	}
	if err := args.RequireModel(cfg, s.cfg.Schema); err != nil {
		s.mu.Unlock()
		return err
	}
	argv, err := args.Build(cfg, s.cfg.Schema)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.state = StateStarting
	cmd := exec.Command(bin, argv...)
	cmd.SysProcAttr = sysProcAttr()
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return s.failSpawn(bin, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return s.failSpawn(bin, err)
	}
	if err := cmd.Start(); err != nil {
		return s.failSpawn(bin, err)
	}

	s.cmd = cmd
	s.startedAt = time.Now()
	// spawned without immediate error is the running signal; the child's own
	// health endpoint is the readiness probe
	s.state = StateRunning
	pid := cmd.Process.Pid
	s.mu.Unlock()

	childRunning.Set(1)
	spawnsTotal.Inc()
	s.log.Info().Int("pid", pid).Str("bin", bin).Strs("args", argv).Msg("server spawned")
	s.pub.Publish(Event{Name: "spawn_start", Fields: map[string]any{"pid": pid, "bin": bin}})

	var wg sync.WaitGroup
	wg.Add(2)
	go s.consume(types.LogKindStdout, stdout, &wg)
	go s.consume(types.LogKindStderr, stderr, &wg)
	go s.reap(cmd, &wg)
	return nil
}

// failSpawn reverts a failed spawn attempt to stopped and reports it
// synchronously. Called with s.mu held.
func (s *Supervisor) failSpawn(bin string, err error) error {
	s.state = StateStopped
	s.mu.Unlock()
	s.log.Error().Err(err).Str("bin", bin).Msg("spawn failed")
	s.pub.Publish(Event{Name: "spawn_error", Fields: map[string]any{"error": err.Error()}})
	return ErrSpawn(err)
}

// Stop signals the process group of the tracked child and returns without
// waiting for the exit; termination is observed by the waiter goroutine.
// Stop itself never mutates state, so stopped always reflects a truly
// terminated child.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	cmd := s.cmd
	s.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return ErrNotRunning()
	}
	pid := cmd.Process.Pid
	if err := terminateGroup(pid); err != nil {
		// group signal can fail if the leader already exited; fall back to the
		// direct process handle, best effort
		_ = cmd.Process.Kill()
	}
	s.log.Info().Int("pid", pid).Msg("stop signal sent")
	s.pub.Publish(Event{Name: "stop_signal", Fields: map[string]any{"pid": pid}})
	return nil
}

// ClearLogs empties the log buffer.
func (s *Supervisor) ClearLogs() { s.logs.clear() }

// consume feeds one output stream into the log buffer, line by line.
func (s *Supervisor) consume(kind string, r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		s.appendLog(kind, line)
	}
}

// reap is the exit handler, invoked exactly once per lifecycle episode. It
// records the exit entry before the state returns to stopped, so a stopped
// state always implies the exit is visible in the logs.
func (s *Supervisor) reap(cmd *exec.Cmd, readers *sync.WaitGroup) {
	// both pipes must be drained before Wait releases them
	readers.Wait()
	werr := cmd.Wait()

	code := 0
	outcome := "clean"
	msg := "process exited with code 0"
	if werr != nil {
		outcome = "error"
		var ee *exec.ExitError
		if errors.As(werr, &ee) {
			code = ee.ExitCode()
			msg = fmt.Sprintf("process exited with code %d", code)
			if ws := ee.ProcessState; ws != nil && code == -1 {
				msg = fmt.Sprintf("process exited with code %d (%s)", code, ws.String())
			}
		} else {
			code = -1
			msg = "process exited: " + werr.Error()
		}
	}
	s.appendLog(types.LogKindExit, msg)
	exitsTotal.WithLabelValues(outcome).Inc()
	childRunning.Set(0)

	s.mu.Lock()
	s.cmd = nil
	s.state = StateStopped
	s.mu.Unlock()

	s.log.Info().Int("code", code).Msg("server exited")
	s.pub.Publish(Event{Name: "spawn_exit", Fields: map[string]any{"code": code}})
}

func (s *Supervisor) appendLog(kind, msg string) {
	s.logs.append(types.LogEntry{Type: kind, Message: msg, Timestamp: time.Now().UnixMilli()})
	logEntriesTotal.WithLabelValues(kind).Inc()
}
