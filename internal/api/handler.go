package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ironsheep/notesplit/internal/config"
	"github.com/ironsheep/notesplit/internal/session"
)

// Handler serves the extraction API.
type Handler struct {
	cfg     *config.Config
	store   *session.Store
	logger  *slog.Logger
	version string
}

// New creates a handler storing results in store. A nil logger discards
// output.
func New(cfg *config.Config, store *session.Store, version string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		version: version,
	}
}

// Attach registers the routes on r.
func (h *Handler) Attach(r chi.Router) {
	r.Get("/health", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", h.handleExtract)

		r.Get("/files/{session}/{name}", h.handleFile)
		r.Delete("/files/{session}", h.handleDeleteSession)

		r.Get("/sessions/{session}", h.handleSessionInfo)
		r.Get("/sessions/{session}/info", h.handleSessionInfo)
		r.Delete("/sessions/{session}", h.handleDeleteSession)
	})
}

// Router returns a router with the API, request logging, panic recovery
// and CORS.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.API.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Auto-Deleted"},
	}))

	h.Attach(r)
	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, HealthResponse{
		Status:            "healthy",
		Version:           h.version,
		SessionTTLMinutes: h.store.TTL().Minutes(),
	})
}

func writeJson(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, err error) {
	body := ErrorBody{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC(),
	}

	if err != nil {
		body.Error.Details = err.Error()
	}

	writeJson(w, status, body)
}
