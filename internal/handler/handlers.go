package handler

import (
	"github.com/zerovault/zerovault/internal/config"
	"github.com/zerovault/zerovault/internal/handler/http"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/service"
	"github.com/zerovault/zerovault/internal/session"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, sessions session.Manager, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, sessions, logger),
	}, nil
}
