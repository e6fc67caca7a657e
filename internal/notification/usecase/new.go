package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"stockwatch-srv/internal/bus"
	"stockwatch-srv/internal/model"
	"stockwatch-srv/internal/notification"
	"stockwatch-srv/internal/notification/repository"
	"stockwatch-srv/pkg/discord"
	"stockwatch-srv/pkg/log"
	"stockwatch-srv/pkg/mail"
	"stockwatch-srv/pkg/push/apns"
	pkgRedis "stockwatch-srv/pkg/redis"
)

type implUseCase struct {
	logger log.Logger
	cfg    notification.Config
	repo   repository.Repository
	bus    bus.Bus

	// Optional transports. A nil transport disables its channel.
	redis  pkgRedis.IRedis
	mailer mail.ISender
	pusher apns.IPusher

	// ops is the optional webhook for delivery-failure reports.
	ops discord.IDiscord

	queue   chan model.AlertTriggered
	closing atomic.Bool
	wg      sync.WaitGroup
	done    chan struct{}

	// seen is the in-process idempotency fallback when Redis is down or not
	// configured. Keys expire lazily on sweep.
	seenMu sync.Mutex
	seen   map[string]time.Time

	clock func() time.Time
}

// New wires the dispatcher. Redis, mailer, pusher and ops may each be nil;
// the corresponding behavior degrades gracefully (in-memory idempotency, no
// email channel, no APNs channel, no ops reports).
func New(logger log.Logger, cfg notification.Config, repo repository.Repository, b bus.Bus, rds pkgRedis.IRedis, mailer mail.ISender, pusher apns.IPusher, ops discord.IDiscord) notification.UseCase {
	cfg = cfg.Normalize()
	return &implUseCase{
		logger: logger,
		cfg:    cfg,
		repo:   repo,
		bus:    b,
		redis:  rds,
		mailer: mailer,
		pusher: pusher,
		ops:    ops,
		queue:  make(chan model.AlertTriggered, cfg.QueueSize),
		done:   make(chan struct{}),
		seen:   make(map[string]time.Time),
		clock:  time.Now,
	}
}
