package middleware

import (
	"stockwatch-srv/pkg/log"
	"stockwatch-srv/pkg/scope"
)

type Middleware struct {
	logger     log.Logger
	jwtManager scope.Manager
}

func New(logger log.Logger, jwtManager scope.Manager) Middleware {
	return Middleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}
