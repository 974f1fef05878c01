package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify]. It tells callers whether a failed operation
// may succeed on retry or whether the database is gone altogether.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, syntax errors, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again in a new transaction (serialization failure, deadlock).
	Retryable

	// ConnectionLost indicates that the database could not be reached.
	ConnectionLost
)

// ErrorClassificator classifies driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL
// reached through the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
//
// Transport-level failures (*pgconn.ConnectError, *net.OpError,
// driver.ErrBadConn, sql.ErrConnDone) are [ConnectionLost]. Server errors are
// delegated to [ClassifyPgError]. Anything else is [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var connectErr *pgconn.ConnectError
	var opErr *net.OpError
	if errors.As(err, &connectErr) || errors.As(err, &opErr) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return ConnectionLost
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
//   - Class 08 and 57P01..57P03 (shutdown, cannot connect now) → [ConnectionLost]
//   - 40001 serialization failure, 40P01 deadlock → [Retryable]
//   - everything else → [NonRetryable]
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if pgerrcode.IsConnectionException(pgErr.Code) {
		return ConnectionLost
	}

	switch pgErr.Code {
	case pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.CannotConnectNow:
		return ConnectionLost

	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable
	}

	return NonRetryable
}

// QueryErrorKind names the failure classes of a submitted query that get a
// dedicated user-facing message.
type QueryErrorKind int

const (
	QueryErrorOther QueryErrorKind = iota
	QueryErrorUndefinedColumn
	QueryErrorUndefinedTable
	QueryErrorSyntax
	QueryErrorReadOnly
	QueryErrorTimeout
	QueryErrorTooLarge
	QueryErrorUnavailable
)

// ClassifyQueryError maps an error returned by a [QueryExecutor] to a
// [QueryErrorKind] using structured Postgres error codes.
func ClassifyQueryError(err error) QueryErrorKind {
	switch {
	case err == nil:
		return QueryErrorOther
	case errors.Is(err, ErrResultTooLarge):
		return QueryErrorTooLarge
	case errors.Is(err, ErrDatabaseUnavailable):
		return QueryErrorUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return QueryErrorTimeout
	}

	switch postgresError(err) {
	case pgerrcode.UndefinedColumn:
		return QueryErrorUndefinedColumn
	case pgerrcode.UndefinedTable:
		return QueryErrorUndefinedTable
	case pgerrcode.SyntaxError:
		return QueryErrorSyntax
	case pgerrcode.ReadOnlySQLTransaction, pgerrcode.InsufficientPrivilege:
		return QueryErrorReadOnly
	case pgerrcode.QueryCanceled:
		return QueryErrorTimeout
	}

	return QueryErrorOther
}
