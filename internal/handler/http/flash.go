package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
)

const (
	flashCookieName = "flash"
	flashMaxAge     = 60
)

// flash is a one-shot message rendered on the next page view.
type flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// setFlash stores a message for the next rendered page, replacing any
// message that has not been shown yet.
func (h *Handler) setFlash(w http.ResponseWriter, category, message string) {
	data, err := json.Marshal([]flash{{Category: category, Message: message}})
	if err != nil {
		h.logger.Err(err).Msg("error encoding flash message")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns pending messages and deletes the cookie.
func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) []flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	flashes, err := decodeFlashes(cookie.Value)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("dropping flash cookie")
		return nil
	}
	return flashes
}

func decodeFlashes(value string) ([]flash, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFlash, err)
	}

	var flashes []flash
	if err = json.Unmarshal(data, &flashes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFlash, err)
	}
	return flashes, nil
}

// redirectWithFlash sets a flash message and answers 303 See Other.
func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, url, category, message string) {
	h.setFlash(w, category, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
