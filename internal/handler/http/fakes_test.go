package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

// ---- Fake: AuthService ----

type fakeAuthService struct {
	registerUserFn   func(ctx context.Context, email, password string) (models.User, error)
	loginFn          func(ctx context.Context, email, password string) (models.User, error)
	createSessionFn  func(ctx context.Context, user models.User) (models.Token, error)
	resolveSessionFn func(ctx context.Context, tokenString string) (models.User, error)
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, email, password string) (models.User, error) {
	return f.registerUserFn(ctx, email, password)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) CreateSession(ctx context.Context, user models.User) (models.Token, error) {
	return f.createSessionFn(ctx, user)
}

func (f *fakeAuthService) ResolveSession(ctx context.Context, tokenString string) (models.User, error) {
	if f.resolveSessionFn == nil {
		return models.User{}, service.ErrSessionInvalid
	}
	return f.resolveSessionFn(ctx, tokenString)
}

// ---- Fake: PasswordResetService ----

type fakePasswordResetService struct {
	requestResetFn  func(ctx context.Context, email string) error
	validateTokenFn func(ctx context.Context, token string) error
	consumeResetFn  func(ctx context.Context, token, password, confirm string) error
}

func (f *fakePasswordResetService) RequestReset(ctx context.Context, email string) error {
	return f.requestResetFn(ctx, email)
}

func (f *fakePasswordResetService) ValidateResetToken(ctx context.Context, token string) error {
	return f.validateTokenFn(ctx, token)
}

func (f *fakePasswordResetService) ConsumeReset(ctx context.Context, token, password, confirm string) error {
	return f.consumeResetFn(ctx, token, password, confirm)
}

// ---- Fake: ExerciseService ----

type fakeExerciseService struct {
	listFn        func(ctx context.Context) ([]models.Exercise, error)
	getQuestionFn func(ctx context.Context, exerciseID int64) (string, error)
}

func (f *fakeExerciseService) List(ctx context.Context) ([]models.Exercise, error) {
	return f.listFn(ctx)
}

func (f *fakeExerciseService) GetQuestion(ctx context.Context, exerciseID int64) (string, error) {
	return f.getQuestionFn(ctx, exerciseID)
}

// ---- Fake: GraderService ----

type fakeGraderService struct {
	submitFn   func(ctx context.Context, exerciseID int64, userQuery string) (models.GradeReport, error)
	runQueryFn func(ctx context.Context, query string) (models.QueryResult, error)
}

func (f *fakeGraderService) Submit(ctx context.Context, exerciseID int64, userQuery string) (models.GradeReport, error) {
	return f.submitFn(ctx, exerciseID, userQuery)
}

func (f *fakeGraderService) RunQuery(ctx context.Context, query string) (models.QueryResult, error) {
	return f.runQueryFn(ctx, query)
}

// ---- Fake: ReportService ----

type fakeReportService struct {
	buildPDFFn func(ctx context.Context, w io.Writer) error
}

func (f *fakeReportService) BuildPDF(ctx context.Context, w io.Writer) error {
	return f.buildPDFFn(ctx, w)
}

func (f *fakeReportService) ExportAllToCSV(context.Context, store.ExportSink) ([]models.ExportResult, error) {
	return nil, nil
}

// ---- Fake: HealthService ----

type fakeHealthService struct {
	err error
}

func (f *fakeHealthService) Check(context.Context) error {
	return f.err
}

// ---- Helpers ----

const testSessionToken = "valid-session"

var testUser = models.User{UserID: 1, Email: "user@example.com"}

// signedInAuth resolves testSessionToken to testUser.
func signedInAuth() *fakeAuthService {
	return &fakeAuthService{
		resolveSessionFn: func(_ context.Context, tokenString string) (models.User, error) {
			if tokenString == testSessionToken {
				return testUser, nil
			}
			return models.User{}, service.ErrSessionInvalid
		},
	}
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			BaseURL:         "http://localhost:8080",
			SessionDuration: time.Hour,
		},
		Server: config.Server{RequestTimeout: 5 * time.Second},
	}
}

func newTestHandler(svcs *service.Services) *Handler {
	if svcs.AuthService == nil {
		svcs.AuthService = &fakeAuthService{}
	}
	return NewHandler(svcs, testConfig(), models.NewAppBuildInfo("1.2.3", "2026-01-01", "abc123"), logger.Nop())
}

// serve runs req through the full router.
func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	require.NotNil(t, req)
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func withSessionCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionToken})
	return req
}

// flashFrom decodes the flash cookie set on a response.
func flashFrom(t *testing.T, rr *httptest.ResponseRecorder) []flash {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge > 0 {
			flashes, err := decodeFlashes(c.Value)
			require.NoError(t, err)
			return flashes
		}
	}
	return nil
}

func cookieFrom(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
