package http

import (
	"stockwatch-srv/internal/notification/repository"
	"stockwatch-srv/pkg/log"
)

type Handler struct {
	logger log.Logger
	repo   repository.Repository
}

func New(logger log.Logger, repo repository.Repository) *Handler {
	return &Handler{
		logger: logger,
		repo:   repo,
	}
}
