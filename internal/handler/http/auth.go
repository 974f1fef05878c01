package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageHome, pageData{Title: "Home"})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageDashboard, pageData{Title: "Dashboard"})
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageRegister, pageData{Title: "Register"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	_, err := h.services.AuthService.RegisterUser(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			h.redirectWithFlash(w, r, "/register", flashError, msgFillAllFields)
		case errors.Is(err, service.ErrPasswordTooLong):
			log.Err(err).Msg("password too long")
			h.redirectWithFlash(w, r, "/register", flashError, msgPasswordTooLong)
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			h.redirectWithFlash(w, r, "/register", flashError, msgEmailExists)
		case errors.Is(err, store.ErrDatabaseUnavailable):
			log.Err(err).Msg("database unavailable during registration")
			h.redirectWithFlash(w, r, "/register", flashError, msgDatabaseUnavailable)
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			h.redirectWithFlash(w, r, "/register", flashError, msgUnexpectedError)
		}
		return
	}

	h.redirectWithFlash(w, r, "/login", flashSuccess, msgRegistered)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLogin, pageData{Title: "Login"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	user, err := h.services.AuthService.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongCredentials) || errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("wrong credentials")
			h.redirectWithFlash(w, r, "/login", flashError, msgInvalidCredentials)
		case errors.Is(err, store.ErrDatabaseUnavailable):
			log.Err(err).Msg("database unavailable during login")
			h.redirectWithFlash(w, r, "/login", flashError, msgDatabaseUnavailable)
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			h.redirectWithFlash(w, r, "/login", flashError, msgUnexpectedError)
		}
		return
	}

	token, err := h.services.AuthService.CreateSession(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of session failed")
		h.redirectWithFlash(w, r, "/login", flashError, msgUnexpectedError)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	h.redirectWithFlash(w, r, "/", flashSuccess, msgLoggedOut)
}
