package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/models"
)

// consumeAttempts bounds retries of the consume transaction after a
// serialization failure or deadlock.
const consumeAttempts = 3

type resetTokenRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewResetTokenRepository constructs a [ResetTokenRepository] over db.
func NewResetTokenRepository(db *DB, logger *logger.Logger) ResetTokenRepository {
	logger.Debug().Msg("creating reset token repository")
	return &resetTokenRepository{
		db:     db,
		logger: logger,
	}
}

// SaveResetToken stores the hash, owner and expiry of a freshly issued token.
func (r *resetTokenRepository) SaveResetToken(ctx context.Context, token models.ResetToken) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveResetTokenQuery(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.SaveResetToken").Msg("error saving reset token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapUnavailable(err))
	}

	return nil
}

// FindResetToken returns a token that exists and has not expired at now,
// without consuming it.
func (r *resetTokenRepository) FindResetToken(ctx context.Context, tokenHash string, now time.Time) (models.ResetToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindResetTokenQuery(tokenHash, now)
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var t models.ResetToken
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&t.TokenHash, &t.Email, &t.ExpiresAt, &t.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.ResetToken{}, ErrResetTokenNotFound
	case err != nil:
		log.Err(err).Str("func", "*resetTokenRepository.FindResetToken").Msg("error loading reset token")
		return models.ResetToken{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.wrapUnavailable(err))
	}

	return t, nil
}

// ConsumeResetToken deletes the live token identified by tokenHash and sets
// passwordHash on its owner inside one transaction. It returns the owner's
// e-mail. A token that is unknown, expired or already consumed yields
// [ErrResetTokenNotFound] and nothing is changed.
func (r *resetTokenRepository) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (string, error) {
	var (
		email string
		err   error
	)

	for attempt := 1; attempt <= consumeAttempts; attempt++ {
		email, err = r.consumeOnce(ctx, tokenHash, now, passwordHash)
		if err == nil || r.db.errorClassificator.Classify(err) != Retryable {
			break
		}
		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retrying reset token consumption")
	}

	return email, err
}

func (r *resetTokenRepository) consumeOnce(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (string, error) {
	log := logger.FromContext(ctx)

	deleteQuery, deleteArgs, err := buildConsumeResetTokenQuery(tokenHash, now)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.ConsumeResetToken").Msg("error beginning transaction")
		return "", fmt.Errorf("%w: %w", ErrBeginningTransaction, r.db.wrapUnavailable(err))
	}
	defer tx.Rollback()

	var email string
	err = tx.QueryRowContext(ctx, deleteQuery, deleteArgs...).Scan(&email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrResetTokenNotFound
	case err != nil:
		log.Err(err).Str("func", "*resetTokenRepository.ConsumeResetToken").Msg("error deleting reset token")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapUnavailable(err))
	}

	updateQuery, updateArgs, err := buildUpdatePasswordQuery(email, passwordHash)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.ConsumeResetToken").Msg("error updating password")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapUnavailable(err))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return "", ErrNoUserWasFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*resetTokenRepository.ConsumeResetToken").Msg("error committing transaction")
		return "", fmt.Errorf("%w: %w", ErrCommitingTransaction, r.db.wrapUnavailable(err))
	}

	return email, nil
}

// DeleteResetToken removes a token regardless of its expiry.
func (r *resetTokenRepository) DeleteResetToken(ctx context.Context, tokenHash string) error {
	query, args, err := buildDeleteResetTokenQuery(tokenHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resetTokenRepository.DeleteResetToken").Msg("error deleting reset token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapUnavailable(err))
	}

	return nil
}

// DeleteExpiredResetTokens removes every token whose expiry is at or before
// now and returns how many were removed.
func (r *resetTokenRepository) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredResetTokensQuery(now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapUnavailable(err))
	}

	return res.RowsAffected()
}
