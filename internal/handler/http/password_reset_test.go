package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantFlash flash
	}{
		{name: "link sent", wantFlash: flash{flashSuccess, msgResetLinkSent}},
		{name: "unknown email", err: fmt.Errorf("password reset request failed: %w", store.ErrNoUserWasFound), wantFlash: flash{flashError, msgEmailNotFound}},
		{name: "empty email", err: service.ErrInvalidDataProvided, wantFlash: flash{flashError, msgEmailNotFound}},
		{name: "database down", err: fmt.Errorf("saving reset token failed: %w", store.ErrDatabaseUnavailable), wantFlash: flash{flashError, msgDatabaseUnavailable}},
		{name: "mail failed", err: fmt.Errorf("%w: %w", service.ErrSendingResetMail, errors.New("smtp down")), wantFlash: flash{flashError, msgResetMailFailed}},
		{name: "unexpected", err: errors.New("boom"), wantFlash: flash{flashError, msgUnexpectedError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotEmail string
			reset := &fakePasswordResetService{
				requestResetFn: func(_ context.Context, email string) error {
					gotEmail = email
					return tt.err
				},
			}
			h := newTestHandler(&service.Services{PasswordResetService: reset})

			rr := serve(t, h, formRequest(http.MethodPost, "/forgot_password", url.Values{"email": {" user@example.com"}}))

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/forgot_password", rr.Header().Get("Location"))
			assert.Equal(t, []flash{tt.wantFlash}, flashFrom(t, rr))
			assert.Equal(t, "user@example.com", gotEmail)
		})
	}
}

func TestResetPasswordPage(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantFlash *flash
	}{
		{name: "valid token"},
		{name: "unknown or expired token", err: store.ErrResetTokenNotFound, wantFlash: &flash{flashError, msgInvalidResetToken}},
		{name: "database down", err: store.ErrDatabaseUnavailable, wantFlash: &flash{flashError, msgDatabaseUnavailable}},
		{name: "unexpected", err: errors.New("boom"), wantFlash: &flash{flashError, msgUnexpectedError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset := &fakePasswordResetService{
				validateTokenFn: func(_ context.Context, token string) error {
					require.Equal(t, "tok123", token)
					return tt.err
				},
			}
			h := newTestHandler(&service.Services{PasswordResetService: reset})

			rr := serve(t, h, httptest.NewRequest(http.MethodGet, "/reset_password/tok123", nil))

			if tt.wantFlash == nil {
				require.Equal(t, http.StatusOK, rr.Code)
				assert.Contains(t, rr.Body.String(), `action="/reset_password/tok123"`)
				return
			}
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/forgot_password", rr.Header().Get("Location"))
			assert.Equal(t, []flash{*tt.wantFlash}, flashFrom(t, rr))
		})
	}
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantLocation string
		wantFlash    flash
	}{
		{name: "success", wantLocation: "/login", wantFlash: flash{flashSuccess, msgPasswordReset}},
		{name: "mismatch", err: service.ErrPasswordMismatch, wantLocation: "/reset_password/tok123", wantFlash: flash{flashError, msgPasswordsDoNotMatch}},
		{name: "empty password", err: service.ErrInvalidDataProvided, wantLocation: "/reset_password/tok123", wantFlash: flash{flashError, msgFillAllFields}},
		{name: "password too long", err: service.ErrPasswordTooLong, wantLocation: "/reset_password/tok123", wantFlash: flash{flashError, msgPasswordTooLong}},
		{name: "database down", err: store.ErrDatabaseUnavailable, wantLocation: "/reset_password/tok123", wantFlash: flash{flashError, msgDatabaseUnavailable}},
		{name: "token already used", err: fmt.Errorf("consuming reset token failed: %w", store.ErrResetTokenNotFound), wantLocation: "/forgot_password", wantFlash: flash{flashError, msgInvalidResetToken}},
		{name: "account removed", err: store.ErrNoUserWasFound, wantLocation: "/forgot_password", wantFlash: flash{flashError, msgInvalidResetToken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset := &fakePasswordResetService{
				consumeResetFn: func(_ context.Context, token, password, confirm string) error {
					require.Equal(t, "tok123", token)
					require.Equal(t, "new-secret", password)
					require.Equal(t, "new-secret2", confirm)
					return tt.err
				},
			}
			h := newTestHandler(&service.Services{PasswordResetService: reset})

			form := url.Values{"password": {"new-secret"}, "confirm_password": {"new-secret2"}}
			rr := serve(t, h, formRequest(http.MethodPost, "/reset_password/tok123", form))

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
			assert.Equal(t, []flash{tt.wantFlash}, flashFrom(t, rr))
		})
	}
}
