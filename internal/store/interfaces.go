package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sql-trainer/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists registered accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// ExerciseRepository reads the seeded exercise catalog.
type ExerciseRepository interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, exerciseID int64) (models.Exercise, error)
}

// ResetTokenRepository stores hashed password reset tokens.
//
// ConsumeResetToken deletes a live token and updates the owner's password in
// one transaction, so a token is redeemed at most once.
type ResetTokenRepository interface {
	SaveResetToken(ctx context.Context, token models.ResetToken) error
	FindResetToken(ctx context.Context, tokenHash string, now time.Time) (models.ResetToken, error)
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (string, error)
	DeleteResetToken(ctx context.Context, tokenHash string) error
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// QueryExecutor runs user-submitted SQL in a read-only, time-bounded
// transaction that is always rolled back.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) (models.QueryResult, error)
	ExecuteBoth(ctx context.Context, userQuery, referenceQuery string) (models.QueryResult, models.QueryResult, error)
}

// ReportRepository reads the fixed reporting tables.
type ReportRepository interface {
	FetchTable(ctx context.Context, table models.ReportTable) (models.TableData, error)
}

// ExportSink receives one rendered export file and returns where it was
// stored.
type ExportSink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
