package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"stockwatch-srv/internal/activity"
	"stockwatch-srv/internal/activity/repository"
	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/model"
	"stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/log"
)

type implUseCase struct {
	logger log.Logger
	cfg    activity.Config
	bus    bus.Bus
	repo   repository.Repository

	loc      *time.Location
	openMin  int
	closeMin int
	clock    func() time.Time

	// mu serializes override commands and state transitions. Concurrent
	// admin actors get last-writer-wins, never interleaved state.
	mu               sync.Mutex
	current          model.ActivityState
	override         *model.ActivityState
	overrideBoundary time.Time

	onOpen []func(ctx context.Context)

	quit chan struct{}
	done chan struct{}
}

// New creates the scheduler. Timezone or window configuration errors are
// fatal here: the component cannot safely decide a state without them.
func New(logger log.Logger, cfg activity.Config, b bus.Bus, repo repository.Repository) (activity.UseCase, error) {
	return newImpl(logger, cfg, b, repo, time.Now)
}

func newImpl(logger log.Logger, cfg activity.Config, b bus.Bus, repo repository.Repository, clock func() time.Time) (*implUseCase, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, errors.NewSchedulerClockError("unknown timezone " + cfg.Timezone)
	}

	openMin, err := parseClock(cfg.OpenTime)
	if err != nil {
		return nil, err
	}
	closeMin, err := parseClock(cfg.CloseTime)
	if err != nil {
		return nil, err
	}
	if openMin >= closeMin {
		return nil, activity.ErrInvalidWindow
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Minute
	}

	uc := &implUseCase{
		logger:   logger,
		cfg:      cfg,
		bus:      b,
		repo:     repo,
		loc:      loc,
		openMin:  openMin,
		closeMin: closeMin,
		clock:    clock,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	uc.current = uc.scheduledState(clock())

	return uc, nil
}

// parseClock parses "HH:MM" into minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, errors.NewSchedulerClockError("invalid time " + s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.NewSchedulerClockError("invalid hour in " + s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.NewSchedulerClockError("invalid minute in " + s)
	}
	return h*60 + m, nil
}
