package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/models"
)

type reportRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewReportRepository constructs a [ReportRepository] over db.
func NewReportRepository(db *DB, logger *logger.Logger) ReportRepository {
	logger.Debug().Msg("creating report repository")
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

// FetchTable reads every row of table, rendering each value as a string.
// The column names are those reported by the database.
func (r *reportRepository) FetchTable(ctx context.Context, table models.ReportTable) (models.TableData, error) {
	log := logger.FromContext(ctx).With().Str("table", table.Name).Logger()

	query, args, err := buildSelectReportTableQuery(table)
	if err != nil {
		return models.TableData{}, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.FetchTable").Msg("error querying report table")
		return models.TableData{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.wrapUnavailable(err))
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return models.TableData{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	data := models.TableData{Table: table, Columns: columns}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			log.Err(err).Str("func", "*reportRepository.FetchTable").Msg("error scanning report row")
			return models.TableData{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatCell(v)
		}
		data.Rows = append(data.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return models.TableData{}, fmt.Errorf("%w: %w", ErrScanningRows, r.db.wrapUnavailable(err))
	}

	return data, nil
}

// formatCell renders a driver value for the PDF and CSV outputs. NULL is
// rendered as an empty string and dates without a time part as YYYY-MM-DD.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
