package http

import (
	gorillaws "github.com/gorilla/websocket"

	"stockwatch-srv/internal/websocket"
	"stockwatch-srv/pkg/log"
)

type Handler struct {
	logger   log.Logger
	uc       websocket.UseCase
	upgrader gorillaws.Upgrader
}

func New(logger log.Logger, uc websocket.UseCase, environment string) *Handler {
	return &Handler{
		logger:   logger,
		uc:       uc,
		upgrader: newUpgrader(environment),
	}
}
