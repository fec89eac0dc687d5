package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"llamactl/internal/config"
	"llamactl/internal/httpapi"
	"llamactl/internal/schema"
	"llamactl/internal/supervisor"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "llamactl",
		Short:         "Control daemon for a local llama-server process",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSchemaCmd())
	return root
}

type serveOptions struct {
	configPath    string
	addr          string
	modelsDir     string
	serverBin     string
	schemaPath    string
	logLevel      string
	corsOrigins   []string
	maxLogEntries int
	logWindow     int
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP control API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	// Flags with environment variable defaults
	defaultAddr := ":8090"
	if v := os.Getenv("LLAMACTL_ADDR"); v != "" {
		defaultAddr = v
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a yaml/json/toml config file")
	f.StringVar(&opts.addr, "addr", defaultAddr, "HTTP listen address, e.g. :8090")
	f.StringVar(&opts.modelsDir, "models-dir", "~/models/llm", "Directory to scan for *.gguf model files")
	f.StringVar(&opts.serverBin, "server-bin", "", "Path to the llama-server binary (empty = discover)")
	f.StringVar(&opts.schemaPath, "schema", "", "Path to a flag catalog file (empty = embedded catalog)")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	f.StringSliceVar(&opts.corsOrigins, "cors-origin", nil, "Allowed CORS origins (repeatable); empty disables CORS")
	f.IntVar(&opts.maxLogEntries, "max-log-entries", 0, "Retained log entries (0 = default)")
	f.IntVar(&opts.logWindow, "log-window", 0, "Log entries per status response (0 = default)")
	return cmd
}

// applyFileConfig merges file values into opts where the corresponding flag
// was not set explicitly: flags win over the file, the file wins over
// built-in defaults.
func applyFileConfig(cmd *cobra.Command, opts *serveOptions, cfg config.Config) {
	fl := cmd.Flags()
	if !fl.Changed("addr") && cfg.Addr != "" {
		opts.addr = cfg.Addr
	}
	if !fl.Changed("models-dir") && cfg.ModelsDir != "" {
		opts.modelsDir = cfg.ModelsDir
	}
	if !fl.Changed("server-bin") && cfg.ServerBin != "" {
		opts.serverBin = cfg.ServerBin
	}
	if !fl.Changed("schema") && cfg.SchemaPath != "" {
		opts.schemaPath = cfg.SchemaPath
	}
	if !fl.Changed("max-log-entries") && cfg.MaxLogEntries != 0 {
		opts.maxLogEntries = cfg.MaxLogEntries
	}
	if !fl.Changed("log-window") && cfg.LogWindow != 0 {
		opts.logWindow = cfg.LogWindow
	}
	if !fl.Changed("cors-origin") && len(cfg.CORSOrigins) > 0 {
		opts.corsOrigins = cfg.CORSOrigins
	}
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	logger := newLogger(opts.logLevel)

	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFileConfig(cmd, opts, cfg)
	}

	reg, err := loadRegistry(opts.schemaPath)
	if err != nil {
		return err
	}

	sup := supervisor.New(supervisor.Config{
		ServerBin:     opts.serverBin,
		ModelsDir:     opts.modelsDir,
		Schema:        reg,
		MaxLogEntries: opts.maxLogEntries,
		LogWindow:     opts.logWindow,
		Logger:        &logger,
	})

	httpapi.SetLogger(logger)
	if len(opts.corsOrigins) > 0 {
		httpapi.SetCORSOptions(true, opts.corsOrigins,
			[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
			[]string{"Content-Type", "X-Log-Level"})
	}

	srv := &http.Server{Addr: opts.addr, Handler: httpapi.NewMux(sup)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", opts.addr).Str("models_dir", opts.modelsDir).Int("flags", reg.Len()).Msg("llamactl listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	// take the supervised server down with us, best effort
	if err := sup.Stop(); err == nil {
		logger.Info().Msg("stopping supervised server")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func newSchemaCmd() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Flag catalog utilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("schema requires a subcommand: check")
		},
	}
	check := &cobra.Command{
		Use:   "check <catalog>",
		Short: "Validate a flag catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := schema.Load(args[0])
			if err != nil {
				return err
			}
			sections := map[string]int{}
			for _, d := range reg.All() {
				sections[d.Section]++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d flags, %d sections\n", args[0], reg.Len(), len(sections))
			return nil
		},
	}
	schemaCmd.AddCommand(check)
	return schemaCmd
}

func loadRegistry(path string) (*schema.Registry, error) {
	if path == "" {
		return schema.Default()
	}
	return schema.Load(path)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}
