package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/eugenenazirov/blackbox-sd/internal/config"
	"github.com/eugenenazirov/blackbox-sd/internal/discovery"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const healthBody = "OK"

// Handler serves discovery groups computed from a loaded, read-only config.
type Handler struct {
	config config.Config
	expand func(config.Config) []discovery.Group
	logger *zap.Logger
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithLogger sets the logger used for per-request debug output.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler constructs a Handler over cfg. cfg must not be modified afterwards.
func NewHandler(cfg config.Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		config: cfg,
		expand: discovery.Expand,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(healthBody))
}

func (h *Handler) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	groups := h.expand(h.config)

	h.logger.Debug("discovery groups generated",
		zap.Int("groups", len(groups)),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	writeJSON(w, http.StatusOK, groups)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
