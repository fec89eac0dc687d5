package types

// Log entry kinds recorded by the supervisor.
const (
	LogKindStdout = "stdout"
	LogKindStderr = "stderr"
	LogKindExit   = "exit"
)

// LogEntry is one captured line of child-process output, or the exit record
// closing a lifecycle episode. Entries are immutable once appended.
type LogEntry struct {
	// Kind of entry: stdout, stderr or exit.
	// example: stdout
	Type string `json:"type" example:"stdout"`
	// Trimmed line of output, or the exit summary.
	// example: main: server is listening on 127.0.0.1:8080
	Message string `json:"message" example:"main: server is listening on 127.0.0.1:8080"`
	// Capture time in unix milliseconds.
	// example: 1700000000000
	Timestamp int64 `json:"timestamp" example:"1700000000000"`
}

// StatusResponse is returned by GET /server-status.
type StatusResponse struct {
	// Lifecycle state of the supervised server: stopped, starting or running.
	// example: running
	Status string `json:"status" example:"running"`
	// Most recent log entries, oldest first, bounded by the status window.
	Logs []LogEntry `json:"logs"`
	// Process ID of the supervised server, 0 when no child is tracked.
	// example: 12345
	PID int `json:"pid,omitempty" example:"12345"`
	// Seconds since the current child was spawned, 0 when stopped.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds,omitempty" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// SuccessResponse acknowledges an accepted command.
type SuccessResponse struct {
	// example: true
	Success bool `json:"success" example:"true"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// FlagInfo is the external view of one flag-catalog entry, returned by
// GET /flag-definitions.
type FlagInfo struct {
	// Value kind: boolean, number, string, choice or path.
	// example: number
	Type string `json:"type" example:"number"`
	// Schema default; omitted when the flag has none.
	Default any `json:"default,omitempty"`
	// example: false
	Required bool `json:"required,omitempty" example:"false"`
	// Grouping label for presentation.
	// example: sampling
	Section string `json:"section,omitempty" example:"sampling"`
	// Allowed values, only for choice flags.
	Options []string `json:"options,omitempty"`
	// Human-readable flag description.
	// example: Number of threads to use during generation
	Description string `json:"description" example:"Number of threads to use during generation"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of available model files.
	Models []Model `json:"models"`
}
