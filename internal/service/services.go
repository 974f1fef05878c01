package service

import (
	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/mailer"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	ExerciseService      ExerciseService
	GraderService        GraderService
	ReportService        ReportService
	HealthService        HealthService
}

func NewServices(storages *store.Storages, sender mailer.Sender, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:          NewAuthService(storages.UserRepository, cfg.App, logger),
		PasswordResetService: NewPasswordResetService(storages.UserRepository, storages.ResetTokenRepository, sender, cfg.App, logger),
		ExerciseService:      NewExerciseService(storages.ExerciseRepository, logger),
		GraderService:        NewGraderService(storages.ExerciseRepository, storages.QueryExecutor, logger),
		ReportService:        NewReportService(storages.ReportRepository, logger),
		HealthService:        NewHealthService(storages.HealthChecker, logger),
	}
}
