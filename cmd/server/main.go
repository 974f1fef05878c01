package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	myHTTP "github.com/MKhiriev/go-sql-trainer/internal/handler/http"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/mailer"
	"github.com/MKhiriev/go-sql-trainer/internal/server"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/internal/workers"
	"github.com/MKhiriev/go-sql-trainer/migrations"
	"github.com/MKhiriev/go-sql-trainer/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("sql-trainer-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if !logger.SetLevel(cfg.App.LogLevel) {
		log.Warn().Str("level", cfg.App.LogLevel).Msg("unknown log level, using debug")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, cfg.Sandbox, log)
	sender := mailer.NewSMTPSender(cfg.Mail, log)
	services := service.NewServices(storages, sender, *cfg, log)

	handler := myHTTP.NewHandler(services, *cfg, buildInfo, log)
	bgWorkers := workers.NewWorkers(storages, cfg.Workers, log)

	srv, err := server.NewServer(handler.Init(), bgWorkers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
