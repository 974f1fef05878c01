package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Driver names understood by [NewDB].
const (
	DialectPostgres = "pgx"
	DialectSQLite   = "sqlite3"
)

// DB is the connection pool shared by every repository. Dialect selects the
// Postgres-only statements (SET LOCAL ...) issued by the sandbox.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened pool.
func NewDB(conn *sql.DB, dialect string, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}
}

// NewConnectPostgres opens a pgx-backed pool for cfg and pings it.
// A failed ping is reported as [ErrDatabaseUnavailable].
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(DialectPostgres, cfg.ConnString())
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxOpen / 2)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return NewDB(conn, DialectPostgres, log), nil
}

// Dialect returns the driver name the pool was opened with.
func (db *DB) Dialect() string {
	return db.dialect
}

// wrapUnavailable marks connection-level failures with
// [ErrDatabaseUnavailable] and returns other errors unchanged.
func (db *DB) wrapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if db.errorClassificator.Classify(err) == ConnectionLost {
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	return err
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// HealthCheck pings the database. Any failure is reported as
// [ErrDatabaseUnavailable].
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	return nil
}
