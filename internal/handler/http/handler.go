package http

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-sql-trainer/internal/config"
	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/service"
	"github.com/MKhiriev/go-sql-trainer/models"
)

type Handler struct {
	services *service.Services

	sessionDuration time.Duration
	secureCookies   bool
	requestTimeout  time.Duration
	buildInfo       models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		sessionDuration: cfg.App.SessionDuration,
		secureCookies:   strings.HasPrefix(cfg.App.BaseURL, "https://"),
		requestTimeout:  cfg.Server.RequestTimeout,
		buildInfo:       buildInfo,
		logger:          logger,
	}
}
