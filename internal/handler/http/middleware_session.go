package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/utils"
	"github.com/MKhiriev/go-sql-trainer/models"
)

// withSession resolves the session cookie and, for a valid session, stores
// the user in the request context with [utils.WithUser].
//
// An invalid session cookie is cleared. When the user cannot be loaded
// because of a storage failure the request continues as anonymous.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.ResolveSession(ctx, cookie.Value)
		if err != nil {
			log := logger.FromRequest(r)
			if errors.Is(err, service.ErrSessionInvalid) {
				log.Debug().Err(err).Msg("clearing invalid session cookie")
				h.clearSessionCookie(w)
			} else {
				log.Err(err).Msg("error resolving session")
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// requireSession redirects anonymous requests to the login page.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := currentUser(r); !ok {
			logger.FromRequest(r).Debug().Str("uri", r.RequestURI).Msg("anonymous access to protected page")
			h.redirectWithFlash(w, r, "/login", flashError, msgLoginRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser returns the signed-in user stored by withSession.
func currentUser(r *http.Request) (models.User, bool) {
	return utils.UserFromContext(r.Context())
}
