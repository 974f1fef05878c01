package models

import "time"

// User represents an account of the SQL trainer.
// PasswordHash is a bcrypt digest and must never leave the server.
type User struct {
	// UserID is the server-generated identifier of the account.
	UserID int64 `json:"id"`

	// Email is the unique login of the user. It is stored and compared
	// exactly as entered.
	Email string `json:"email"`

	// Password carries the plain-text password on its way from a form to the
	// service layer. It is never persisted.
	Password string `json:"-"`

	// PasswordHash is the bcrypt hash stored in the "users" table.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
