package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
)

// BackgroundWorkers are started with the server and stopped after the
// listener is closed.
type BackgroundWorkers interface {
	Run(ctx context.Context)
	Wait()
}

type server struct {
	httpServer *httpServer
	workers    BackgroundWorkers
	logger     *logger.Logger
}

// NewServer builds the HTTP server for handler. workers may be nil.
func NewServer(handler http.Handler, workers BackgroundWorkers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" || handler == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler, cfg, logger),
		workers:    workers,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// Run starts the workers and the HTTP server and blocks until ctx is done
// or the listener fails. The listener is closed first, then the workers are
// stopped and awaited.
func (s *server) Run(ctx context.Context) error {
	workersCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	if s.workers != nil {
		s.logger.Info().Msg("launching background workers")
		s.workers.Run(workersCtx)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	var err error
	select {
	case <-ctx.Done():
		s.Shutdown()
		err = <-serveErr
	case err = <-serveErr:
	}

	stopWorkers()
	if s.workers != nil {
		s.workers.Wait()
	}

	if err == nil {
		s.logger.Info().Msg("server Shutdown gracefully")
	}
	return err
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
