package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ConfigGetter looks up a stored project config.
type ConfigGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*Config, error)
}

// Handler serves project configs over HTTP.
type Handler struct {
	configs ConfigGetter
	logger  *log.Logger
}

// NewHandler creates a Handler backed by configs.
func NewHandler(configs ConfigGetter, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{configs: configs, logger: logger}
}

// Routes registers the handler's endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/v1/projects/{projectID}/config", h.getConfig)
}

// NewRouter returns a router serving only the project endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h.Routes(r)
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid project id"})
		return
	}

	cfg, err := h.configs.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, cfg)
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "project not found"})
	case errors.Is(err, ErrParse):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not parse project config"})
	default:
		h.logger.Error("Failed to serve project config", "id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
