// Package http exposes expansions over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/internal/logging"
	"github.com/aretw0/exinc/pkg/adapters/memory"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/observability"
	"github.com/aretw0/exinc/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// maxBodyBytes bounds the size of an expansion request.
const maxBodyBytes = 8 << 20

// Config configures the server.
type Config struct {
	// Store persists expansion records (default: in memory).
	Store ports.ResultStore
	// Options are applied to every engine before the per-request ones
	// (configuration, filesystem, default paths).
	Options []exinc.Option
	// Roots are the directories request search paths may name. Every run is
	// confined to them and to the configured default paths.
	Roots []string
	// AllowedOrigin enables CORS for one origin ("*" for any). Empty disables it.
	AllowedOrigin string
	// Registry receives the expansion metrics and backs /metrics (default: a new registry).
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Server implements the generated ServerInterface.
type Server struct {
	store         ports.ResultStore
	options       []exinc.Option
	roots         []string
	allowedOrigin string
	registry      *prometheus.Registry
	metrics       *observability.Metrics
	logger        *slog.Logger
	Streams       *StreamManager
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// NewServer creates a Server. Metrics are registered on cfg.Registry.
func NewServer(cfg Config) *Server {
	s := &Server{
		store:         cfg.Store,
		options:       cfg.Options,
		roots:         cfg.Roots,
		allowedOrigin: cfg.AllowedOrigin,
		registry:      cfg.Registry,
		logger:        cfg.Logger,
		Streams:       NewStreamManager(),
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(collectors.NewGoCollector())
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.metrics = observability.NewMetrics(s.registry)
	return s
}

// NewHandler creates a new HTTP handler for the expansion API.
func NewHandler(cfg Config) http.Handler {
	return NewServer(cfg).Handler()
}

// Handler returns the router: the generated API routes plus metrics and the API docs.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "err", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	handler := HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})
	if s.allowedOrigin == "" {
		return handler
	}
	return enableCORS(s.allowedOrigin, handler)
}

func enableCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>exinc API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Expand handles the POST /v1/expand request.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	var body ExpandJSONRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("Expand: Invalid request body", "err", err)
		return
	}

	id := uuid.NewString()
	hooks := s.metrics.Hooks().Merge(s.Streams.Hooks(id))

	opts := append([]exinc.Option(nil), s.options...)
	opts = append(opts,
		exinc.WithRoots(s.roots...),
		exinc.WithHooks(hooks),
		exinc.WithLogger(s.logger),
	)
	if body.Paths != nil {
		opts = append(opts, exinc.WithPaths(*body.Paths...))
	}
	if body.Parent != nil && *body.Parent != "" {
		opts = append(opts, exinc.WithFilename(*body.Parent))
	}
	if body.Preprocessor != nil && *body.Preprocessor != "" {
		opts = append(opts, exinc.WithPreprocessor(*body.Preprocessor))
	}

	eng, err := exinc.New(body.Text, opts...)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownPreprocessor),
			errors.Is(err, domain.ErrPathOutsideRoots),
			errors.Is(err, domain.ErrUnconfinable):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Preprocessor error: %v", err))
			s.logger.Error("Expand: engine setup failed", "err", err)
		}
		return
	}

	start := time.Now()
	res := eng.Run(r.Context())
	s.metrics.ObserveRun(res, time.Since(start))
	s.Streams.Finish(id, res)

	record := &domain.Record{
		ID:           id,
		Parent:       eng.Parent(),
		Preprocessor: eng.Preprocessor().Name(),
		CreatedAt:    time.Now().UTC(),
		Result:       res,
	}
	if err := s.store.Save(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store result")
		s.logger.Error("Expand: store failed", "id", id, "err", err)
		return
	}

	s.logger.Info("Expansion finished", "id", id, "parent", record.Parent, "outcome", observability.Outcome(res))
	writeJSON(w, http.StatusOK, mapReportFromDomain(domain.NewReport(record)))
}

// GetExpansion handles the GET /v1/expansions/{id} request.
func (s *Server) GetExpansion(w http.ResponseWriter, r *http.Request, id string) {
	record, err := s.store.Load(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResultNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("Expansion %s not found", id))
			return
		case errors.Is(err, domain.ErrInvalidID):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load result")
		s.logger.Error("GetExpansion failed", "id", id, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, mapReportFromDomain(domain.NewReport(record)))
}

// ListExpansions handles the GET /v1/expansions request.
func (s *Server) ListExpansions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list results")
		s.logger.Error("ListExpansions failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ExpansionList{Ids: ids})
}

// DeleteExpansion handles the DELETE /v1/expansions/{id} request.
func (s *Server) DeleteExpansion(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete result")
		s.logger.Error("DeleteExpansion failed", "id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: "ok"})
}

// GetVersion handles the GET /version request.
func (s *Server) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionInfo{
		App:     "exinc-http",
		Version: strings.TrimSpace(exinc.Version),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Error{Error: msg})
}
