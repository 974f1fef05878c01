package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/models"
	"github.com/jackc/pgx/v5"
)

// sandbox is the [QueryExecutor] used for user-submitted SQL. Every call
// runs inside its own read-only transaction that is rolled back on return.
// On Postgres the transaction also gets a statement_timeout and, when
// configured, a SELECT-only role.
type sandbox struct {
	db               *DB
	statementTimeout time.Duration
	maxRows          int
	role             string
	logger           *logger.Logger
}

// NewQueryExecutor constructs the sandboxed [QueryExecutor].
func NewQueryExecutor(db *DB, cfg config.Sandbox, logger *logger.Logger) QueryExecutor {
	logger.Debug().Msg("creating query sandbox")
	return &sandbox{
		db:               db,
		statementTimeout: cfg.StatementTimeout,
		maxRows:          cfg.MaxRows,
		role:             cfg.Role,
		logger:           logger,
	}
}

// Execute runs query and returns its columns and rows.
func (s *sandbox) Execute(ctx context.Context, query string) (models.QueryResult, error) {
	var result models.QueryResult

	err := s.inReadOnlyTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		result, err = s.run(ctx, tx, query)
		return err
	})

	return result, err
}

// ExecuteBoth runs userQuery then referenceQuery against the same snapshot.
// The returned error belongs to whichever query failed first.
func (s *sandbox) ExecuteBoth(ctx context.Context, userQuery, referenceQuery string) (models.QueryResult, models.QueryResult, error) {
	var userResult, referenceResult models.QueryResult

	err := s.inReadOnlyTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		if userResult, err = s.run(ctx, tx, userQuery); err != nil {
			return err
		}
		referenceResult, err = s.run(ctx, tx, referenceQuery)
		return err
	})
	if err != nil {
		return models.QueryResult{}, models.QueryResult{}, err
	}

	return userResult, referenceResult, nil
}

func (s *sandbox) inReadOnlyTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	if s.statementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.statementTimeout)
		defer cancel()
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		log.Err(err).Str("func", "*sandbox.inReadOnlyTx").Msg("error beginning read-only transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, s.db.wrapUnavailable(err))
	}
	// never committed
	defer tx.Rollback()

	if s.db.Dialect() == DialectPostgres {
		if err := s.restrict(ctx, tx); err != nil {
			log.Err(err).Str("func", "*sandbox.inReadOnlyTx").Msg("error restricting sandbox transaction")
			return s.db.wrapUnavailable(err)
		}
	}

	if err := fn(ctx, tx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ctxErr, err)
		}
		return s.db.wrapUnavailable(err)
	}

	return nil
}

func (s *sandbox) restrict(ctx context.Context, tx *sql.Tx) error {
	if s.statementTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL statement_timeout = %d", s.statementTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error setting statement timeout: %w", err)
		}
	}

	if s.role != "" {
		stmt := "SET LOCAL ROLE " + pgx.Identifier{s.role}.Sanitize()
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error switching to sandbox role: %w", err)
		}
	}

	return nil
}

func (s *sandbox) run(ctx context.Context, tx *sql.Tx, query string) (models.QueryResult, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return models.QueryResult{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return models.QueryResult{}, err
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return models.QueryResult{}, err
	}

	result := models.QueryResult{Columns: columns, Rows: make([][]any, 0)}
	for rows.Next() {
		if s.maxRows > 0 && len(result.Rows) >= s.maxRows {
			return models.QueryResult{}, fmt.Errorf("%w: more than %d rows", ErrResultTooLarge, s.maxRows)
		}

		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return models.QueryResult{}, err
		}

		for i, v := range values {
			values[i] = normalizeValue(v)
			if isNumericColumn(columnTypes[i]) {
				values[i] = numericValue(values[i])
			}
		}
		result.Rows = append(result.Rows, values)
	}

	return result, rows.Err()
}

// normalizeValue turns driver values into JSON-encodable ones. Byte slices
// become strings and non-finite floats are spelled the way Postgres prints
// them.
func normalizeValue(v any) any {
	switch v := v.(type) {
	case []byte:
		return string(v)
	case float64:
		switch {
		case math.IsNaN(v):
			return "NaN"
		case math.IsInf(v, 1):
			return "Infinity"
		case math.IsInf(v, -1):
			return "-Infinity"
		}
	}
	return v
}

func isNumericColumn(ct *sql.ColumnType) bool {
	name := strings.ToUpper(ct.DatabaseTypeName())
	return name == "NUMERIC" || name == "DECIMAL"
}

// numericValue marks a decimal rendered as text by the driver as a number so
// that it compares equal to integers and floats of the same value.
func numericValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch s {
	case "NaN", "Infinity", "-Infinity":
		return s
	}
	return json.Number(s)
}
