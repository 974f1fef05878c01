package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidExerciseID:           http.StatusNotFound,
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrPasswordTooLong:     http.StatusBadRequest,

	store.ErrExerciseNotFound:    http.StatusNotFound,
	store.ErrDatabaseUnavailable: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
