package service

import (
	"github.com/emzola/biblioteca/internal/jsonlog"
	"github.com/emzola/biblioteca/repository"
)

type Service interface {
	books
	health
}

// service defines the service layer.
type service struct {
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		logger: logger,
		repo:   repo,
	}
}
