// Package supervisor owns the lifecycle of the single supervised llama-server
// child process. It is structured into small files by concern:
//
//   - supervisor.go: core Supervisor type, constructor, Start/Stop, exit handler.
//   - config.go: Config and package defaults; New applies defaults.
//   - logbuf.go: bounded in-memory buffer of child output entries.
//   - status.go: Status/FlagDefinitions/ListModels read model.
//   - errors.go: error types and helpers (IsAlreadyRunning, IsNotRunning, ...).
//   - locate.go: llama-server binary discovery.
//   - events.go: lifecycle event publication.
//   - metrics.go: Prometheus collectors.
//   - proc_unix.go / proc_windows.go: process-group creation and signaling.
//
// At most one child is active at any time. Start and Stop return immediately;
// the child's exit is observed asynchronously by a waiter goroutine, which is
// the only place the state returns to stopped. External packages should treat
// this package as the orchestration layer and use exported methods only.
package supervisor
