package http

import (
	"stockwatch-srv/internal/alert"
	"stockwatch-srv/pkg/log"
)

type Handler struct {
	logger log.Logger
	uc     alert.UseCase
}

func New(logger log.Logger, uc alert.UseCase) *Handler {
	return &Handler{
		logger: logger,
		uc:     uc,
	}
}
