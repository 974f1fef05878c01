package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/mock"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

func TestResetTokenPurger_PurgesWithCurrentTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockResetTokenRepository(ctrl)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewResetTokenPurger(repo, time.Minute, logger.Nop())
	p.now = func() time.Time { return now }

	repo.EXPECT().DeleteExpiredResetTokens(gomock.Any(), now).Return(int64(3), nil)
	p.purge(context.Background())
}

func TestResetTokenPurger_ErrorDoesNotStopLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockResetTokenRepository(ctrl)
	p := NewResetTokenPurger(repo, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	repo.EXPECT().DeleteExpiredResetTokens(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Time) (int64, error) {
			calls++
			if calls >= 3 {
				cancel()
			}
			return 0, errors.New("connection reset")
		},
	).MinTimes(3)

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("purger did not stop after cancel")
	}
	assert.GreaterOrEqual(t, calls, 3)
}

func TestNewResetTokenPurger_DefaultInterval(t *testing.T) {
	p := NewResetTokenPurger(nil, 0, logger.Nop())
	assert.Equal(t, defaultPurgeInterval, p.interval)
}

func TestNewWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := &store.Storages{ResetTokenRepository: mock.NewMockResetTokenRepository(ctrl)}

	ws := NewWorkers(storages, config.Workers{ResetTokenPurgeInterval: time.Minute}, logger.Nop())
	assert.Len(t, ws.workers, 1)
	assert.IsType(t, &ResetTokenPurger{}, ws.workers[0])
}
