package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-sql-trainer/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"id", "email", "password_hash", "created_at"}

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(models.User{}.TableName()).
		Columns("email", "password_hash").
		Values(user.Email, user.PasswordHash).
		Suffix("RETURNING id, email, password_hash, created_at").
		ToSql()
}

func buildFindUserByEmailQuery(email string) (string, []any, error) {
	return psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildFindUserByIDQuery(userID int64) (string, []any, error) {
	return psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildUpdatePasswordQuery(email, passwordHash string) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildListExercisesQuery() (string, []any, error) {
	return psql.Select("id", "question", "correct_query").
		From(models.Exercise{}.TableName()).
		OrderBy("id").
		ToSql()
}

func buildGetExerciseQuery(exerciseID int64) (string, []any, error) {
	return psql.Select("id", "question", "correct_query").
		From(models.Exercise{}.TableName()).
		Where(sq.Eq{"id": exerciseID}).
		ToSql()
}

const resetTokensTable = "password_reset_tokens"

func buildSaveResetTokenQuery(token models.ResetToken) (string, []any, error) {
	return psql.Insert(resetTokensTable).
		Columns("token_hash", "email", "expires_at").
		Values(token.TokenHash, token.Email, token.ExpiresAt).
		ToSql()
}

func buildFindResetTokenQuery(tokenHash string, now time.Time) (string, []any, error) {
	return psql.Select("token_hash", "email", "expires_at", "created_at").
		From(resetTokensTable).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Gt{"expires_at": now}).
		ToSql()
}

func buildConsumeResetTokenQuery(tokenHash string, now time.Time) (string, []any, error) {
	return psql.Delete(resetTokensTable).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Gt{"expires_at": now}).
		Suffix("RETURNING email").
		ToSql()
}

func buildDeleteResetTokenQuery(tokenHash string) (string, []any, error) {
	return psql.Delete(resetTokensTable).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
}

func buildDeleteExpiredResetTokensQuery(now time.Time) (string, []any, error) {
	return psql.Delete(resetTokensTable).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}

// buildSelectReportTableQuery selects every column of one of the fixed
// report tables. The table name never comes from user input.
func buildSelectReportTableQuery(table models.ReportTable) (string, []any, error) {
	if _, ok := models.LookupReportTable(table.Name); !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownReportTable, table.Name)
	}

	return psql.Select("*").From(table.Name).ToSql()
}
