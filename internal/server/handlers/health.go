package handlers

import (
	"net/http"
	"time"

	"github.com/optimade/optimade-go/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Document{
		Data: map[string]any{
			"status":  "healthy",
			"service": "optimade-api",
			"version": h.app.Version(),
		},
		Meta: response.NewMeta(r, 1, nil, false),
	})
}

// HandleReady handles GET /ready. The server is ready once the resource
// registry has loaded.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	reg, err := h.app.Registry()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Registry not available")
		response.ServiceUnavailable(w, r, "Resource registry not available")
		return
	}

	response.OK(w, response.Document{
		Data: map[string]any{
			"status":      "ready",
			"collections": reg.Names(),
			"cache": map[string]any{
				"items": h.cache.ItemCount(),
			},
			"uptime": time.Since(h.startTime).Round(time.Second).String(),
		},
		Meta: response.NewMeta(r, 1, nil, false),
	})
}
