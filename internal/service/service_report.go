package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/report"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

type reportService struct {
	reportRepository store.ReportRepository
	tables           []models.ReportTable
	logger           *logger.Logger
}

func NewReportService(reportRepository store.ReportRepository, logger *logger.Logger) ReportService {
	return &reportService{
		reportRepository: reportRepository,
		tables:           models.ReportTables,
		logger:           logger,
	}
}

// BuildPDF fetches every reference table and writes the PDF document to w.
// Nothing is written when any table cannot be read.
func (r *reportService) BuildPDF(ctx context.Context, w io.Writer) error {
	log := logger.FromContext(ctx)

	data := make([]models.TableData, 0, len(r.tables))
	for _, table := range r.tables {
		tableData, err := r.reportRepository.FetchTable(ctx, table)
		if err != nil {
			log.Err(err).Str("table", table.Name).Msg("fetching report table failed")
			return fmt.Errorf("%w: %w", ErrBuildingReport, err)
		}
		data = append(data, tableData)
	}

	if err := report.RenderPDF(w, data); err != nil {
		log.Err(err).Msg("rendering pdf failed")
		return fmt.Errorf("%w: %w", ErrBuildingReport, err)
	}

	return nil
}

// ExportAllToCSV writes one CSV file per reference table to sink. A failing
// table is logged and skipped; the returned error joins all failures.
func (r *reportService) ExportAllToCSV(ctx context.Context, sink store.ExportSink) ([]models.ExportResult, error) {
	log := logger.FromContext(ctx)

	results := make([]models.ExportResult, 0, len(r.tables))
	var errs []error

	for _, table := range r.tables {
		result := models.ExportResult{Table: table.Name}

		location, rows, err := r.exportTable(ctx, table, sink)
		if err != nil {
			log.Err(err).Str("table", table.Name).Msg("error exporting table")
			result.Err = err
			errs = append(errs, fmt.Errorf("%s: %w", table.Name, err))
		} else {
			log.Info().Str("table", table.Name).Str("location", location).Int("rows", rows).Msg("table exported")
			result.Location = location
			result.Rows = rows
		}

		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

func (r *reportService) exportTable(ctx context.Context, table models.ReportTable, sink store.ExportSink) (string, int, error) {
	data, err := r.reportRepository.FetchTable(ctx, table)
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if err = report.WriteCSV(&buf, data); err != nil {
		return "", 0, err
	}

	location, err := sink.Put(ctx, table.FileName(), buf.Bytes())
	if err != nil {
		return "", 0, err
	}

	return location, len(data.Rows), nil
}
