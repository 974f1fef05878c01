// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

const defaultPurgeInterval = 10 * time.Minute

// ResetTokenPurger periodically deletes expired password reset tokens.
type ResetTokenPurger struct {
	tokenRepository store.ResetTokenRepository
	interval        time.Duration
	now             func() time.Time
	logger          *logger.Logger
}

func NewResetTokenPurger(tokenRepository store.ResetTokenRepository, interval time.Duration, logger *logger.Logger) *ResetTokenPurger {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	return &ResetTokenPurger{
		tokenRepository: tokenRepository,
		interval:        interval,
		now:             time.Now,
		logger:          logger,
	}
}

// Run purges once immediately and then on every tick until ctx is done.
func (p *ResetTokenPurger) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("reset token purger started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.purge(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info().Msg("reset token purger stopped")
			return
		case <-ticker.C:
		}
	}
}

func (p *ResetTokenPurger) purge(ctx context.Context) {
	deleted, err := p.tokenRepository.DeleteExpiredResetTokens(ctx, p.now())
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Msg("error purging expired reset tokens")
		}
		return
	}
	if deleted > 0 {
		p.logger.Info().Int64("deleted", deleted).Msg("expired reset tokens purged")
	}
}
