package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same e-mail already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a lookup by e-mail or id matches no
	// user record.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrExerciseNotFound is returned when no exercise has the requested id.
	ErrExerciseNotFound = errors.New("exercise not found")

	// ErrResetTokenNotFound is returned when a password reset token is
	// unknown, already consumed or expired.
	ErrResetTokenNotFound = errors.New("reset token not found or expired")

	// ErrResultTooLarge is returned by the sandbox when a submitted query
	// produces more rows than the configured cap.
	ErrResultTooLarge = errors.New("query result is too large")

	// ErrUnknownReportTable is returned when a report table outside the
	// fixed list is requested.
	ErrUnknownReportTable = errors.New("unknown report table")

	// ErrDatabaseUnavailable wraps driver errors that mean the database
	// cannot be reached at all (connection refused, lost, or not accepting
	// connections yet).
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with the
	// query builder fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
