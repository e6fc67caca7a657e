package usecase

import (
	"context"
	"sync"
	"time"

	"stockwatch-srv/internal/alert"
	"stockwatch-srv/internal/alert/repository"
	"stockwatch-srv/internal/model"
	"stockwatch-srv/pkg/log"
)

// volumeWindow bounds the rolling baseline; volume predicates stay silent
// until minVolumeSamples ticks have been seen for the symbol.
const (
	volumeWindow     = 20
	minVolumeSamples = 5
)

// RSI defaults when the alert carries no threshold.
const (
	defaultOverbought = 70
	defaultOversold   = 30
)

type implUseCase struct {
	logger     log.Logger
	repo       repository.Repository
	dispatcher alert.Dispatcher
	clock      func() time.Time

	// snapMu guards snapshot. Slices stored in the map are never mutated in
	// place: CRUD builds a replacement and swaps it in, so the tick path can
	// evaluate a fetched slice without holding the lock.
	snapMu   sync.RWMutex
	snapshot map[string][]model.Alert

	// memMu guards per-symbol tick memory (previous MAs, volume window).
	memMu sync.Mutex
	mem   map[string]*symbolMemory
}

type symbolMemory struct {
	prevShortMA *float64
	prevLongMA  *float64
	volumes     []float64
}

// New loads the eligible-alert snapshot and returns the engine.
func New(ctx context.Context, logger log.Logger, repo repository.Repository, dispatcher alert.Dispatcher) (alert.UseCase, error) {
	uc := &implUseCase{
		logger:     logger,
		repo:       repo,
		dispatcher: dispatcher,
		clock:      time.Now,
		snapshot:   make(map[string][]model.Alert),
		mem:        make(map[string]*symbolMemory),
	}
	if err := uc.rebuildSnapshot(ctx); err != nil {
		return nil, err
	}
	return uc, nil
}
