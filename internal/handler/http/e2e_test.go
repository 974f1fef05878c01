package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/mailer"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

// memStore is an in-memory implementation of every store interface.
type memStore struct {
	mu     sync.Mutex
	users  map[string]models.User
	tokens map[string]models.ResetToken
	nextID int64

	exercises []models.Exercise
	results   map[string]models.QueryResult
}

func newMemStore() *memStore {
	teams := models.QueryResult{Columns: []string{"teamname"}, Rows: [][]any{{"India"}, {"Australia"}}}
	return &memStore{
		users:  make(map[string]models.User),
		tokens: make(map[string]models.ResetToken),
		exercises: []models.Exercise{
			{ID: 1, Question: "List the names of all teams.", CorrectQuery: "SELECT TeamName FROM Teams"},
		},
		results: map[string]models.QueryResult{
			"SELECT TeamName FROM Teams":                   teams,
			"SELECT teamname FROM teams":                   teams,
			"SELECT TeamName FROM Teams WHERE TeamID = 1": {Columns: []string{"teamname"}, Rows: [][]any{{"India"}}},
		},
	}
}

func (m *memStore) storages() *store.Storages {
	return &store.Storages{
		UserRepository:       m,
		ExerciseRepository:   m,
		ResetTokenRepository: m,
		ReportRepository:     m,
		QueryExecutor:        m,
		HealthChecker:        m,
	}
}

func (m *memStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return models.User{}, store.ErrEmailAlreadyExists
	}
	m.nextID++
	user.UserID = m.nextID
	m.users[user.Email] = user
	return user, nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return user, nil
}

func (m *memStore) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.UserID == userID {
			return user, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *memStore) UpdatePassword(_ context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updatePasswordLocked(email, passwordHash)
}

func (m *memStore) updatePasswordLocked(email, passwordHash string) error {
	user, ok := m.users[email]
	if !ok {
		return store.ErrNoUserWasFound
	}
	user.PasswordHash = passwordHash
	m.users[email] = user
	return nil
}

func (m *memStore) SaveResetToken(_ context.Context, token models.ResetToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *memStore) FindResetToken(_ context.Context, tokenHash string, now time.Time) (models.ResetToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[tokenHash]
	if !ok || token.Expired(now) {
		return models.ResetToken{}, store.ErrResetTokenNotFound
	}
	return token, nil
}

func (m *memStore) ConsumeResetToken(_ context.Context, tokenHash string, now time.Time, passwordHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[tokenHash]
	if !ok || token.Expired(now) {
		return "", store.ErrResetTokenNotFound
	}
	delete(m.tokens, tokenHash)
	return token.Email, m.updatePasswordLocked(token.Email, passwordHash)
}

func (m *memStore) DeleteResetToken(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, tokenHash)
	return nil
}

func (m *memStore) DeleteExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for hash, token := range m.tokens {
		if token.Expired(now) {
			delete(m.tokens, hash)
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListExercises(context.Context) ([]models.Exercise, error) {
	return m.exercises, nil
}

func (m *memStore) GetExercise(_ context.Context, exerciseID int64) (models.Exercise, error) {
	for _, e := range m.exercises {
		if e.ID == exerciseID {
			return e, nil
		}
	}
	return models.Exercise{}, store.ErrExerciseNotFound
}

func (m *memStore) Execute(_ context.Context, query string) (models.QueryResult, error) {
	result, ok := m.results[query]
	if !ok {
		return models.QueryResult{}, store.ErrExecutingQuery
	}
	return result, nil
}

func (m *memStore) ExecuteBoth(ctx context.Context, userQuery, referenceQuery string) (models.QueryResult, models.QueryResult, error) {
	user, err := m.Execute(ctx, userQuery)
	if err != nil {
		return models.QueryResult{}, models.QueryResult{}, err
	}
	reference, err := m.Execute(ctx, referenceQuery)
	if err != nil {
		return models.QueryResult{}, models.QueryResult{}, err
	}
	return user, reference, nil
}

func (m *memStore) FetchTable(_ context.Context, table models.ReportTable) (models.TableData, error) {
	return models.TableData{
		Table:   table,
		Columns: table.Labels,
		Rows:    [][]string{make([]string, len(table.Labels))},
	}, nil
}

func (m *memStore) HealthCheck(context.Context) error {
	return nil
}

// outbox records sent mail.
type outbox struct {
	mu       sync.Mutex
	messages []mailer.Message
}

func (o *outbox) Send(_ context.Context, msg mailer.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

func (o *outbox) last(t *testing.T) mailer.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.messages)
	return o.messages[len(o.messages)-1]
}

func newE2EServer(t *testing.T) (*resty.Client, *outbox) {
	t.Helper()

	cfg := testConfig()
	cfg.App.SecretKey = "e2e-secret"
	cfg.App.TokenIssuer = "sql-trainer"
	cfg.App.ResetTokenTTL = time.Hour

	mail := &outbox{}
	services := service.NewServices(newMemStore().storages(), mail, cfg, logger.Nop())
	h := NewHandler(services, cfg, models.NewAppBuildInfo("test", "", ""), logger.Nop())

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return resty.New().SetBaseURL(srv.URL), mail
}

func form(kv ...string) map[string]string {
	data := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = kv[i+1]
	}
	return data
}

func TestE2E_AccountLifecycle(t *testing.T) {
	client, mail := newE2EServer(t)
	const email = "e2e@example.com"

	resp, err := client.R().SetFormData(form("email", email, "password", "first-pass")).Post("/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "/login", resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), msgRegistered)

	resp, err = client.R().SetFormData(form("email", email, "password", "first-pass")).Post("/register")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), msgEmailExists)

	resp, err = client.R().SetFormData(form("email", email, "password", "wrong")).Post("/login")
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), msgInvalidCredentials)

	resp, err = client.R().SetFormData(form("email", email, "password", "first-pass")).Post("/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "/dashboard", resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), "Logout ("+email+")")

	resp, err = client.R().Get("/logout")
	require.NoError(t, err)
	assert.Equal(t, "/", resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), msgLoggedOut)

	resp, err = client.R().Get("/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), msgLoginRequired)

	// password reset
	resp, err = client.R().SetFormData(form("email", "nobody@example.com")).Post("/forgot_password")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), msgEmailNotFound)

	resp, err = client.R().SetFormData(form("email", email)).Post("/forgot_password")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), msgResetLinkSent)

	msg := mail.last(t)
	assert.Equal(t, email, msg.To)
	assert.Equal(t, service.ResetMailSubject, msg.Subject)
	idx := strings.Index(msg.Body, "/reset_password/")
	require.GreaterOrEqual(t, idx, 0, "mail body: %q", msg.Body)
	resetPath := msg.Body[idx:]

	resp, err = client.R().Get(resetPath)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), "<h1>Reset Password</h1>")

	resp, err = client.R().SetFormData(form("password", "second-pass", "confirm_password", "other")).Post(resetPath)
	require.NoError(t, err)
	assert.Equal(t, resetPath, resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), msgPasswordsDoNotMatch)

	resp, err = client.R().SetFormData(form("password", "second-pass", "confirm_password", "second-pass")).Post(resetPath)
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), msgPasswordReset)

	resp, err = client.R().Get(resetPath)
	require.NoError(t, err)
	assert.Equal(t, "/forgot_password", resp.RawResponse.Request.URL.Path)
	assert.Contains(t, resp.String(), msgInvalidResetToken)

	resp, err = client.R().SetFormData(form("email", email, "password", "first-pass")).Post("/login")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), msgInvalidCredentials)

	resp, err = client.R().SetFormData(form("email", email, "password", "second-pass")).Post("/login")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", resp.RawResponse.Request.URL.Path)
}

func TestE2E_SolveExercise(t *testing.T) {
	client, _ := newE2EServer(t)

	_, err := client.R().SetFormData(form("email", "solver@example.com", "password", "pass")).Post("/register")
	require.NoError(t, err)
	resp, err := client.R().SetFormData(form("email", "solver@example.com", "password", "pass")).Post("/login")
	require.NoError(t, err)
	require.Equal(t, "/dashboard", resp.RawResponse.Request.URL.Path)

	resp, err = client.R().Get("/exercises")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), "List the names of all teams.")

	resp, err = client.R().SetQueryParam("exercise_id", "1").Get("/query")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.String(), `data-exercise="1"`)

	var report models.GradeReport
	resp, err = client.R().
		SetFormData(form(sqlQueryField, "SELECT teamname FROM teams")).
		SetResult(&report).
		Post("/submit_query/1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.True(t, report.Correct)
	assert.Equal(t, service.MessageCorrect, report.Message)
	assert.Equal(t, "SELECT TeamName FROM Teams", report.CorrectQuery)

	report = models.GradeReport{}
	resp, err = client.R().
		SetFormData(form(sqlQueryField, "SELECT TeamName FROM Teams WHERE TeamID = 1")).
		SetResult(&report).
		Post("/submit_query/1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.False(t, report.Correct)
	assert.Equal(t, service.MessageIncorrect, report.Message)

	resp, err = client.R().SetFormData(form(sqlQueryField, "SELECT 1")).Post("/submit_query/42")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Contains(t, resp.String(), `"message":"Error: exercise not found"`)

	resp, err = client.R().SetFormData(form(sqlQueryField, "SELECT TeamName FROM Teams")).Post("/query")
	require.NoError(t, err)
	assert.Contains(t, resp.String(), "<td>Australia</td>")

	resp, err = client.R().Get("/download_pdf")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.String(), "%PDF-"))
}
