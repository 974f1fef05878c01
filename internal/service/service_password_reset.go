package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/mailer"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
	"github.com/MKhiriev/go-sql-trainer/internal/utils"
	"github.com/MKhiriev/go-sql-trainer/models"
)

const (
	ResetMailSubject    = "Password Reset Request"
	resetMailBodyFormat = "To reset your password, click the following link: %s"
	resetPathPrefix     = "/reset_password/"
)

type passwordResetService struct {
	userRepository  store.UserRepository
	tokenRepository store.ResetTokenRepository
	sender          mailer.Sender

	// hashKey keys the HMAC of stored tokens.
	hashKey    string
	baseURL    string
	tokenTTL   time.Duration
	bcryptCost int

	now    func() time.Time
	logger *logger.Logger
}

func NewPasswordResetService(
	userRepository store.UserRepository,
	tokenRepository store.ResetTokenRepository,
	sender mailer.Sender,
	cfg config.App,
	logger *logger.Logger,
) PasswordResetService {
	return &passwordResetService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		sender:          sender,
		hashKey:         cfg.SecretKey,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		tokenTTL:        cfg.ResetTokenTTL,
		bcryptCost:      bcrypt.DefaultCost,
		now:             time.Now,
		logger:          logger,
	}
}

// RequestReset mails a reset link to email.
//
// An unknown address is reported as store.ErrNoUserWasFound. When the mail
// cannot be delivered the stored token is removed again and
// ErrSendingResetMail is returned.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	if _, err := s.userRepository.FindUserByEmail(ctx, email); err != nil {
		log.Err(err).Str("email", email).Msg("password reset requested for unusable email")
		return fmt.Errorf("password reset request failed: %w", err)
	}

	rawToken, err := utils.RandomToken(utils.ResetTokenBytes)
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return err
	}

	now := s.now()
	token := models.ResetToken{
		TokenHash: s.hashToken(rawToken),
		Email:     email,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err = s.tokenRepository.SaveResetToken(ctx, token); err != nil {
		log.Err(err).Str("email", email).Msg("saving reset token failed")
		return fmt.Errorf("saving reset token failed: %w", err)
	}

	msg := mailer.Message{
		To:      email,
		Subject: ResetMailSubject,
		Body:    fmt.Sprintf(resetMailBodyFormat, s.resetLink(rawToken)),
	}
	if err = s.sender.Send(ctx, msg); err != nil {
		log.Err(err).Str("email", email).Msg("sending reset mail failed")
		if delErr := s.tokenRepository.DeleteResetToken(ctx, token.TokenHash); delErr != nil {
			log.Err(delErr).Str("email", email).Msg("removing undelivered reset token failed")
		}
		return fmt.Errorf("%w: %w", ErrSendingResetMail, err)
	}

	log.Info().Str("email", email).Time("expires_at", token.ExpiresAt).Msg("password reset link sent")
	return nil
}

// ValidateResetToken reports whether token can still be redeemed without
// consuming it.
func (s *passwordResetService) ValidateResetToken(ctx context.Context, token string) error {
	if token == "" {
		return store.ErrResetTokenNotFound
	}

	if _, err := s.tokenRepository.FindResetToken(ctx, s.hashToken(token), s.now()); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("reset token lookup failed")
		return fmt.Errorf("reset token lookup failed: %w", err)
	}
	return nil
}

// ConsumeReset sets a new password for the owner of token and invalidates
// the token. Mismatching or empty passwords are rejected before storage is
// touched.
func (s *passwordResetService) ConsumeReset(ctx context.Context, token, password, confirm string) error {
	log := logger.FromContext(ctx)

	if password != confirm {
		return ErrPasswordMismatch
	}
	if password == "" {
		return ErrInvalidDataProvided
	}
	if token == "" {
		return store.ErrResetTokenNotFound
	}

	passwordHash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	email, err := s.tokenRepository.ConsumeResetToken(ctx, s.hashToken(token), s.now(), passwordHash)
	if err != nil {
		log.Err(err).Msg("consuming reset token failed")
		return fmt.Errorf("consuming reset token failed: %w", err)
	}

	log.Info().Str("email", email).Msg("password was reset")
	return nil
}

func (s *passwordResetService) hashToken(token string) string {
	return utils.HashString(token, s.hashKey)
}

func (s *passwordResetService) resetLink(token string) string {
	return s.baseURL + resetPathPrefix + token
}
