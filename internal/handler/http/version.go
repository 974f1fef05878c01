package http

import (
	"net/http"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, h.buildInfo, http.StatusOK)
}
