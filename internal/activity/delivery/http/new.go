package http

import (
	"stockwatch-srv/internal/activity"
	"stockwatch-srv/internal/activity/repository"
	"stockwatch-srv/pkg/log"
)

type Handler struct {
	logger log.Logger
	uc     activity.UseCase
	repo   repository.Repository
}

func New(logger log.Logger, uc activity.UseCase, repo repository.Repository) *Handler {
	return &Handler{
		logger: logger,
		uc:     uc,
		repo:   repo,
	}
}
