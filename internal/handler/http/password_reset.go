package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

func (h *Handler) forgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageForgotPassword, pageData{Title: "Forgot Password"})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	email := strings.TrimSpace(r.PostFormValue("email"))

	err := h.services.PasswordResetService.RequestReset(r.Context(), email)
	switch {
	case err == nil:
		h.redirectWithFlash(w, r, "/forgot_password", flashSuccess, msgResetLinkSent)
	case errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("password reset for unknown email")
		h.redirectWithFlash(w, r, "/forgot_password", flashError, msgEmailNotFound)
	case errors.Is(err, store.ErrDatabaseUnavailable):
		log.Err(err).Msg("database unavailable during password reset request")
		h.redirectWithFlash(w, r, "/forgot_password", flashError, msgDatabaseUnavailable)
	case errors.Is(err, service.ErrSendingResetMail):
		log.Err(err).Msg("reset mail was not sent")
		h.redirectWithFlash(w, r, "/forgot_password", flashError, msgResetMailFailed)
	default:
		log.Err(err).Msg("unexpected error occurred during password reset request")
		h.redirectWithFlash(w, r, "/forgot_password", flashError, msgUnexpectedError)
	}
}

func (h *Handler) resetPasswordPage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.services.PasswordResetService.ValidateResetToken(r.Context(), token); err != nil {
		h.resetTokenError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, pageResetPassword, pageData{Title: "Reset Password", Token: token})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	token := chi.URLParam(r, "token")
	self := "/reset_password/" + url.PathEscape(token)

	err := h.services.PasswordResetService.ConsumeReset(r.Context(), token,
		r.PostFormValue("password"), r.PostFormValue("confirm_password"))
	switch {
	case err == nil:
		h.redirectWithFlash(w, r, "/login", flashSuccess, msgPasswordReset)
	case errors.Is(err, service.ErrPasswordMismatch):
		log.Err(err).Msg("password confirmation mismatch")
		h.redirectWithFlash(w, r, self, flashError, msgPasswordsDoNotMatch)
	case errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("empty new password")
		h.redirectWithFlash(w, r, self, flashError, msgFillAllFields)
	case errors.Is(err, service.ErrPasswordTooLong):
		log.Err(err).Msg("new password too long")
		h.redirectWithFlash(w, r, self, flashError, msgPasswordTooLong)
	case errors.Is(err, store.ErrDatabaseUnavailable):
		log.Err(err).Msg("database unavailable during password reset")
		h.redirectWithFlash(w, r, self, flashError, msgDatabaseUnavailable)
	default:
		h.resetTokenError(w, r, err)
	}
}

func (h *Handler) resetTokenError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	switch {
	case errors.Is(err, store.ErrResetTokenNotFound) || errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("invalid reset token")
		h.redirectWithFlash(w, r, "/forgot_password", flashError, msgInvalidResetToken)
	case errors.Is(err, store.ErrDatabaseUnavailable):
		log.Err(err).Msg("database unavailable during reset token lookup")
		h.redirectWithFlash(w, r, "/forgot_password", flashError, msgDatabaseUnavailable)
	default:
		log.Err(err).Msg("unexpected error occurred during password reset")
		h.redirectWithFlash(w, r, "/forgot_password", flashError, msgUnexpectedError)
	}
}
