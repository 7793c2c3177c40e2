package service

import (
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/session"
	"github.com/zerovault/zerovault/internal/store"
)

type Services struct {
	AuthService AuthService
	BlobService BlobService
}

func NewServices(repos *store.Repositories, sessions session.Manager, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(repos.Accounts, sessions, logger),
		BlobService: NewBlobService(repos.Blobs, logger),
	}
}
