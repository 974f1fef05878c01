package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

func (h *Handler) exercises(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	list, err := h.services.ExerciseService.List(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrDatabaseUnavailable) {
			log.Err(err).Msg("database unavailable while listing exercises")
			h.redirectWithFlash(w, r, "/dashboard", flashError, msgDatabaseUnavailable)
			return
		}
		log.Err(err).Msg("error listing exercises")
	}

	h.render(w, r, http.StatusOK, pageExercises, pageData{Title: "Exercises", Exercises: list})
}
