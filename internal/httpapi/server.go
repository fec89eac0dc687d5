package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"llamactl/internal/args"
	"llamactl/internal/schema"
	"llamactl/internal/supervisor"
	"llamactl/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Start(cfg map[string]any) error
	Stop() error
	Status() types.StatusResponse
	ClearLogs()
	FlagDefinitions() []schema.FlagDef
	ListModels() ([]types.Model, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/start-server", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var cfg map[string]any
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		start := time.Now()
		err := svc.Start(cfg)
		logCommand(r, "start-server", start, err)
		if err != nil {
			writeJSONError(w, startErrorStatus(err), err.Error())
			return
		}
		writeJSON(w, types.SuccessResponse{Success: true})
	})

	r.Post("/stop-server", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		err := svc.Stop()
		logCommand(r, "stop-server", start, err)
		if err != nil {
			if supervisor.IsNotRunning(err) {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, types.SuccessResponse{Success: true})
	})

	r.Get("/server-status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	r.Get("/flag-definitions", func(w http.ResponseWriter, r *http.Request) {
		defs := svc.FlagDefinitions()
		out := make(map[string]types.FlagInfo, len(defs))
		for _, d := range defs {
			out[d.Name] = types.FlagInfo{
				Type:        string(d.Type),
				Default:     d.Default,
				Required:    d.Required,
				Section:     d.Section,
				Options:     append([]string(nil), d.Options...),
				Description: d.Description,
			}
		}
		writeJSON(w, out)
	})

	r.Post("/clear-logs", func(w http.ResponseWriter, r *http.Request) {
		svc.ClearLogs()
		writeJSON(w, types.SuccessResponse{Success: true})
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		models, err := svc.ListModels()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, types.ModelsResponse{Models: models})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// startErrorStatus maps well-known start failures to HTTP status codes.
// Lifecycle and validation violations are client errors; a missing server
// binary is a dependency problem, not a bad request.
func startErrorStatus(err error) int {
	switch {
	case supervisor.IsAlreadyRunning(err), args.IsValidation(err):
		return http.StatusBadRequest
	case supervisor.IsBinaryNotFound(err):
		return http.StatusServiceUnavailable
	case supervisor.IsSpawn(err):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// logCommand emits one structured line per lifecycle command when a logger
// is installed and the request's log level allows it.
func logCommand(r *http.Request, op string, start time.Time, err error) {
	if zlog == nil || requestLogLevel(r) < LevelInfo {
		return
	}
	z := zlog.Info().Str("op", op).Dur("dur", time.Since(start))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg(op)
}
