package supervisor

import (
	"github.com/rs/zerolog"

	"llamactl/internal/schema"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxLogEntries = 1000
	defaultLogWindow     = 100
)

// Config encapsulates all tunables for Supervisor construction.
type Config struct {
	// ServerBin is an explicit llama-server path; empty enables discovery.
	ServerBin string
	// ModelsDir is scanned for *.gguf files as a start precondition and for
	// the models listing.
	ModelsDir string
	// Schema is the loaded flag catalog.
	Schema *schema.Registry
	// MaxLogEntries bounds the retained log buffer (0 = default).
	MaxLogEntries int
	// LogWindow bounds the entries returned per status query (0 = default).
	LogWindow int
	// Logger is optional; nil disables supervisor logging.
	Logger *zerolog.Logger
	// Publisher is optional; nil drops lifecycle events.
	Publisher EventPublisher
}

// New constructs a Supervisor from Config, applying package defaults.
func New(cfg Config) *Supervisor {
	if cfg.MaxLogEntries <= 0 {
		cfg.MaxLogEntries = defaultMaxLogEntries
	}
	if cfg.LogWindow <= 0 {
		cfg.LogWindow = defaultLogWindow
	}
	s := &Supervisor{
		cfg:   cfg,
		logs:  newLogBuffer(cfg.MaxLogEntries),
		state: StateStopped,
		pub:   cfg.Publisher,
	}
	if s.pub == nil {
		s.pub = noopPublisher{}
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	} else {
		s.log = zerolog.Nop()
	}
	return s
}
