package http

import (
	"net/http"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
)

// healthz answers 200 when the database is reachable and 503 otherwise.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if err := h.services.HealthService.Check(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(http.StatusText(http.StatusServiceUnavailable)))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
