package http

import (
	"stockwatch-srv/internal/market"
	"stockwatch-srv/pkg/log"
)

type Handler struct {
	logger log.Logger
	uc     market.UseCase
}

func New(logger log.Logger, uc market.UseCase) *Handler {
	return &Handler{
		logger: logger,
		uc:     uc,
	}
}
