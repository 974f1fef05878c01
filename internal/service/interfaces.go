package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/models"
)

// AuthService registers users, checks credentials and manages login
// sessions carried as signed tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateSession(ctx context.Context, user models.User) (models.Token, error)
	ResolveSession(ctx context.Context, tokenString string) (models.User, error)
}

// PasswordResetService issues single-use reset links and redeems them.
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) error
	ConsumeReset(ctx context.Context, token, password, confirm string) error
}

type ExerciseService interface {
	List(ctx context.Context) ([]models.Exercise, error)
	GetQuestion(ctx context.Context, exerciseID int64) (string, error)
}

// GraderService runs user SQL in the sandbox. Submit grades it against an
// exercise's reference query; RunQuery serves the free-form console.
type GraderService interface {
	Submit(ctx context.Context, exerciseID int64, userQuery string) (models.GradeReport, error)
	RunQuery(ctx context.Context, query string) (models.QueryResult, error)
}

// ReportService renders the reference tables.
type ReportService interface {
	BuildPDF(ctx context.Context, w io.Writer) error
	ExportAllToCSV(ctx context.Context, sink store.ExportSink) ([]models.ExportResult, error)
}

type HealthService interface {
	Check(ctx context.Context) error
}
