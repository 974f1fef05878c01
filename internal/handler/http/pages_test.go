package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

func TestExercisesPage(t *testing.T) {
	t.Run("lists exercises", func(t *testing.T) {
		exercises := &fakeExerciseService{
			listFn: func(context.Context) ([]models.Exercise, error) {
				return []models.Exercise{
					{ID: 1, Question: "List all teams"},
					{ID: 2, Question: "Count the players"},
				}, nil
			},
		}
		h := newTestHandler(&service.Services{AuthService: signedInAuth(), ExerciseService: exercises})

		rr := serve(t, h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/exercises", nil)))

		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `<a href="/query?exercise_id=1">List all teams</a>`)
		assert.Contains(t, body, `<a href="/query?exercise_id=2">Count the players</a>`)
	})

	t.Run("empty catalog", func(t *testing.T) {
		exercises := &fakeExerciseService{
			listFn: func(context.Context) ([]models.Exercise, error) { return nil, nil },
		}
		h := newTestHandler(&service.Services{AuthService: signedInAuth(), ExerciseService: exercises})

		rr := serve(t, h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/exercises", nil)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No exercises available.")
	})

	t.Run("database down", func(t *testing.T) {
		exercises := &fakeExerciseService{
			listFn: func(context.Context) ([]models.Exercise, error) {
				return nil, store.ErrDatabaseUnavailable
			},
		}
		h := newTestHandler(&service.Services{AuthService: signedInAuth(), ExerciseService: exercises})

		rr := serve(t, h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/exercises", nil)))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
		assert.Equal(t, []flash{{flashError, msgDatabaseUnavailable}}, flashFrom(t, rr))
	})
}

func TestDownloadPDF(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		reports := &fakeReportService{
			buildPDFFn: func(_ context.Context, w io.Writer) error {
				_, err := io.WriteString(w, "%PDF-1.3 body")
				return err
			},
		}
		h := newTestHandler(&service.Services{AuthService: signedInAuth(), ReportService: reports})

		rr := serve(t, h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/download_pdf", nil)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="predefined_tables.pdf"`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, "13", rr.Header().Get("Content-Length"))
		assert.Equal(t, "%PDF-1.3 body", rr.Body.String())
	})

	tests := []struct {
		name      string
		err       error
		wantFlash flash
	}{
		{name: "database down", err: errors.Join(service.ErrBuildingReport, store.ErrDatabaseUnavailable), wantFlash: flash{flashError, msgDatabaseUnavailable}},
		{name: "render failure", err: service.ErrBuildingReport, wantFlash: flash{flashError, msgReportUnavailable}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &fakeReportService{
				buildPDFFn: func(context.Context, io.Writer) error { return tt.err },
			}
			h := newTestHandler(&service.Services{AuthService: signedInAuth(), ReportService: reports})

			rr := serve(t, h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/download_pdf", nil)))

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
			assert.Equal(t, []flash{tt.wantFlash}, flashFrom(t, rr))
		})
	}
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "healthy", wantStatus: http.StatusOK, wantBody: "OK"},
		{name: "database down", err: store.ErrDatabaseUnavailable, wantStatus: http.StatusServiceUnavailable, wantBody: "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{HealthService: &fakeHealthService{err: tt.err}})

			rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestVersion(t *testing.T) {
	h := newTestHandler(&service.Services{})

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3","date":"2026-01-01","commit":"abc123"}`, rr.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(&service.Services{})

	rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(t, h, httptest.NewRequest(http.MethodDelete, "/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
