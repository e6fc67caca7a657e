package usecase

import (
	"sync"

	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/market"
	"stockwatch-srv/pkg/log"
)

type implUseCase struct {
	logger log.Logger
	cfg    market.Config
	bus    bus.Bus
	engine market.Engine
	gate   market.ActivityGate

	mu     sync.Mutex
	closes map[string][]float64
}

func New(logger log.Logger, cfg market.Config, b bus.Bus, engine market.Engine, gate market.ActivityGate) market.UseCase {
	return &implUseCase{
		logger: logger,
		cfg:    cfg.Normalize(),
		bus:    b,
		engine: engine,
		gate:   gate,
		closes: make(map[string][]float64),
	}
}
