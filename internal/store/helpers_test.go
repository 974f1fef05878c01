package store

import (
	"database/sql"
	"errors"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewDB(conn, DialectPostgres, logger.Nop()), mock
}

// newSQLiteDB opens a private in-memory database. A single connection keeps
// every statement on the same database.
func newSQLiteDB(t *testing.T, schema ...string) *DB {
	t.Helper()
	conn, err := sql.Open(DialectSQLite, ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	for _, stmt := range schema {
		_, err := conn.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	return NewDB(conn, DialectSQLite, logger.Nop())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "pg error " + code}
}

func connRefused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}
