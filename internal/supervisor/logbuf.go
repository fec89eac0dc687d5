package supervisor

import (
	"sync"

	"llamactl/pkg/types"
)

// logBuffer is a bounded, append-only buffer of child output entries.
// Appends come from the two stream readers and the exit handler concurrently;
// the mutex is held only long enough to splice one entry.
type logBuffer struct {
	mu      sync.Mutex
	max     int
	entries []types.LogEntry
}

func newLogBuffer(max int) *logBuffer {
	return &logBuffer{max: max}
}

func (l *logBuffer) append(e types.LogEntry) {
	l.mu.Lock()
	if len(l.entries) >= l.max {
		// evict oldest first
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// snapshot returns the most recent limit entries in chronological order
// without mutating the buffer.
func (l *logBuffer) snapshot(limit int) []types.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]types.LogEntry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

func (l *logBuffer) clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

func (l *logBuffer) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
