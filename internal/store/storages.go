package store

import (
	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
)

// Storages groups every repository built over one connection pool.
type Storages struct {
	UserRepository       UserRepository
	ExerciseRepository   ExerciseRepository
	ResetTokenRepository ResetTokenRepository
	ReportRepository     ReportRepository
	QueryExecutor        QueryExecutor
	HealthChecker        HealthChecker
}

// NewStorages wires all repositories to db.
func NewStorages(db *DB, cfg config.Sandbox, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		ExerciseRepository:   NewExerciseRepository(db, log),
		ResetTokenRepository: NewResetTokenRepository(db, log),
		ReportRepository:     NewReportRepository(db, log),
		QueryExecutor:        NewQueryExecutor(db, cfg, log),
		HealthChecker:        db,
	}
}
