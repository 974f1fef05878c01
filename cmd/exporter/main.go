// Command exporter writes every reference table to CSV, either into a local
// directory or into an S3-compatible bucket.
package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.NewLogger("sql-trainer-exporter")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Err(err).Msg("error getting configs")
		return 1
	}
	logger.SetLevel(cfg.App.LogLevel)

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		log.Err(err).Msg("error connecting to database")
		return 1
	}
	defer db.Close()

	sink, err := store.NewExportSink(ctx, cfg.Export)
	if err != nil {
		log.Err(err).Msg("error creating export destination")
		return 1
	}

	reports := service.NewReportService(store.NewReportRepository(db, log), log)
	results, err := reports.ExportAllToCSV(ctx, sink)
	for _, r := range results {
		if r.Err == nil {
			log.Info().Str("table", r.Table).Str("location", r.Location).Int("rows", r.Rows).Msg("exported")
		}
	}
	if err != nil {
		log.Err(err).Msg("export finished with errors")
		return 1
	}

	log.Info().Int("tables", len(results)).Msg("export finished")
	return 0
}
