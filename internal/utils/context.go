// Package utils provides general-purpose helpers used across the SQL
// trainer: the session user in the request context, keyed hashing, JSON
// responses, session token signing and random token generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-sql-trainer/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// SessionUserCtxKey holds the signed-in user resolved from the session
// cookie.
var SessionUserCtxKey = contextKey("sessionUser")

// WithUser returns a copy of ctx carrying the signed-in user. Only the id
// and e-mail are kept; the password hash never enters the context.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, SessionUserCtxKey, models.User{
		UserID: user.UserID,
		Email:  user.Email,
	})
}

// UserFromContext returns the user stored by [WithUser]. ok is false for
// anonymous requests.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(SessionUserCtxKey).(models.User)
	if !ok || user.UserID <= 0 {
		return models.User{}, false
	}
	return user, true
}
