package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

// User-facing messages.
const (
	MessageCorrect             = "Correct! Your query produced the expected results."
	MessageIncorrect           = "Incorrect. Your query did not produce the expected results."
	MessageDatabaseUnavailable = "Database connection failed. Please try again later."
	MessageExerciseNotFound    = "exercise not found"
	MessageEmptyQuery          = "Please enter a SQL query."
	MessageUnencodableResult   = "the query result contains values that cannot be displayed"

	errorMessagePrefix = "Error: "
)

// QueryError is a failed execution of submitted SQL together with the text
// shown to the user.
type QueryError struct {
	Kind    store.QueryErrorKind
	Message string
	Err     error
}

// NewQueryError classifies err and picks its user-facing message.
func NewQueryError(err error) *QueryError {
	kind := store.ClassifyQueryError(err)
	return &QueryError{Kind: kind, Message: friendlyMessage(kind, err), Err: err}
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func friendlyMessage(kind store.QueryErrorKind, err error) string {
	switch kind {
	case store.QueryErrorUndefinedColumn:
		return "Invalid query: The column you referenced does not exist. Please check your query."
	case store.QueryErrorUndefinedTable:
		return "Invalid query: The table you referenced does not exist. Please check your query."
	case store.QueryErrorSyntax:
		return "Invalid query: " + driverMessage(err)
	case store.QueryErrorReadOnly:
		return "Only read-only queries are allowed."
	case store.QueryErrorTimeout:
		return "Your query took too long and was cancelled."
	case store.QueryErrorTooLarge:
		return "Your query returned too many rows. Please narrow it down."
	case store.QueryErrorUnavailable:
		return MessageDatabaseUnavailable
	}
	return driverMessage(err)
}

// driverMessage prefers the server's message over the wrapped error chain.
func driverMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return err.Error()
}
