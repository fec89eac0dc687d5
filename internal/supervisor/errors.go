package supervisor

// alreadyRunningError signals a start attempt while a child is active.
type alreadyRunningError struct{ state State }

func (e alreadyRunningError) Error() string { return "server already " + string(e.state) }

// ErrAlreadyRunning constructs an alreadyRunningError for the given state.
func ErrAlreadyRunning(state State) error { return alreadyRunningError{state: state} }

// IsAlreadyRunning reports whether err indicates a refused concurrent start.
func IsAlreadyRunning(err error) bool {
	_, ok := err.(alreadyRunningError)
	return ok
}

// notRunningError signals a stop attempt with no tracked child.
type notRunningError struct{}

func (notRunningError) Error() string { return "server is not running" }

// ErrNotRunning constructs a notRunningError.
func ErrNotRunning() error { return notRunningError{} }

// IsNotRunning reports whether err indicates a stop with nothing to stop.
func IsNotRunning(err error) bool {
	_, ok := err.(notRunningError)
	return ok
}

// binaryNotFoundError signals that the llama-server executable could not be
// located, so the HTTP layer can return 503 Service Unavailable instead of 500.
type binaryNotFoundError struct{ msg string }

func (e binaryNotFoundError) Error() string { return e.msg }

// ErrBinaryNotFound constructs a binaryNotFoundError.
func ErrBinaryNotFound(msg string) error { return binaryNotFoundError{msg: msg} }

// IsBinaryNotFound reports whether err indicates a missing server binary.
func IsBinaryNotFound(err error) bool {
	_, ok := err.(binaryNotFoundError)
	return ok
}

// spawnError signals that process creation itself failed.
type spawnError struct{ err error }

func (e spawnError) Error() string { return "spawn llama-server: " + e.err.Error() }

func (e spawnError) Unwrap() error { return e.err }

// ErrSpawn wraps a failed process creation.
func ErrSpawn(err error) error { return spawnError{err: err} }

// IsSpawn reports whether err indicates a failed process creation.
func IsSpawn(err error) bool {
	_, ok := err.(spawnError)
	return ok
}
