package http

import (
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/service"
	"github.com/zerovault/zerovault/internal/session"
)

type Handler struct {
	services *service.Services
	sessions session.Manager

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions session.Manager, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		sessions: sessions,
		logger:   logger,
	}
}
