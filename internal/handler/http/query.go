package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/internal/utils"
	"github.com/MKhiriev/go-sql-trainer/models"
)

const sqlQueryField = "sql_query"

func (h *Handler) queryPage(w http.ResponseWriter, r *http.Request) {
	data, ok := h.queryPageData(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageQuery, data)
}

func (h *Handler) runQuery(w http.ResponseWriter, r *http.Request) {
	data, ok := h.queryPageData(w, r)
	if !ok {
		return
	}

	data.Query = r.PostFormValue(sqlQueryField)
	result, err := h.services.GraderService.RunQuery(r.Context(), data.Query)
	if err != nil {
		var qErr *service.QueryError
		if errors.As(err, &qErr) {
			data.Error = qErr.Message
		} else {
			logger.FromRequest(r).Err(err).Msg("unexpected error running console query")
			data.Error = msgUnexpectedError
		}
	} else {
		data.Result = &result
	}

	h.render(w, r, http.StatusOK, pageQuery, data)
}

// queryPageData loads the exercise named by ?exercise_id=, if any. On
// failure it answers the request itself and returns false.
func (h *Handler) queryPageData(w http.ResponseWriter, r *http.Request) (pageData, bool) {
	data := pageData{Title: "Query"}

	raw := r.URL.Query().Get("exercise_id")
	if raw == "" {
		return data, true
	}

	log := logger.FromRequest(r)
	exerciseID, err := parseExerciseID(raw)
	if err != nil {
		log.Err(err).Str("exercise_id", raw).Msg("bad exercise id")
		h.redirectWithFlash(w, r, "/exercises", flashError, msgExerciseNotFound)
		return data, false
	}

	question, err := h.services.ExerciseService.GetQuestion(r.Context(), exerciseID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrExerciseNotFound):
			log.Err(err).Int64("exercise_id", exerciseID).Msg("exercise not found")
			h.redirectWithFlash(w, r, "/exercises", flashError, msgExerciseNotFound)
		case errors.Is(err, store.ErrDatabaseUnavailable):
			log.Err(err).Msg("database unavailable while loading exercise")
			h.redirectWithFlash(w, r, "/query", flashError, msgDatabaseUnavailable)
		default:
			log.Err(err).Msg("unexpected error loading exercise")
			h.redirectWithFlash(w, r, "/query", flashError, msgUnexpectedError)
		}
		return data, false
	}

	data.ExerciseID = exerciseID
	data.Question = question
	return data, true
}

// submitQuery grades the form field sql_query against an exercise and
// answers with the JSON grade report.
func (h *Handler) submitQuery(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userQuery := r.PostFormValue(sqlQueryField)

	exerciseID, err := parseExerciseID(chi.URLParam(r, "exercise_id"))
	if err != nil {
		log.Err(err).Msg("bad exercise id")
		report := models.GradeReport{Message: "Error: " + service.MessageExerciseNotFound, UserQuery: userQuery}
		h.writeJSON(w, r, report, http.StatusNotFound)
		return
	}

	report, err := h.services.GraderService.Submit(r.Context(), exerciseID, userQuery)
	if err != nil {
		log.Err(err).Int64("exercise_id", exerciseID).Msg("grading failed")
		h.writeJSON(w, r, encodableReport(r, report), statusFromError(err))
		return
	}

	h.writeJSON(w, r, encodableReport(r, report), http.StatusOK)
}

// encodableReport returns report unchanged when it can be encoded as JSON and
// an in-band error report otherwise.
func encodableReport(r *http.Request, report models.GradeReport) models.GradeReport {
	if _, err := json.Marshal(report); err != nil {
		logger.FromRequest(r).Err(err).Msg("grade report cannot be encoded")
		return models.GradeReport{
			Message:   "Error: " + service.MessageUnencodableResult,
			UserQuery: report.UserQuery,
		}
	}
	return report
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing JSON response")
	}
}

func parseExerciseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidExerciseID
	}
	return id, nil
}
