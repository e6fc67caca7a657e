package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"stockwatch-srv/internal/activity"
	"stockwatch-srv/internal/bus"
	ws "stockwatch-srv/internal/websocket"
	"stockwatch-srv/pkg/log"
)

type implUseCase struct {
	logger log.Logger
	cfg    ws.Config

	bus        bus.Bus
	activityUC activity.UseCase

	hub *hub
}

// New creates the websocket UseCase. activityUC supplies the ServerStatus
// snapshot every new connection receives before its subscriptions attach.
func New(logger log.Logger, cfg ws.Config, b bus.Bus, activityUC activity.UseCase) ws.UseCase {
	cfg = cfg.Normalize()
	return &implUseCase{
		logger:     logger,
		cfg:        cfg,
		bus:        b,
		activityUC: activityUC,
		hub:        newHub(logger, cfg.MaxConnections),
	}
}

func (uc *implUseCase) Run() {
	uc.hub.run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	uc.hub.cancel()
	select {
	case <-uc.hub.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *implUseCase) Register(ctx context.Context, input ws.ConnectionInput) error {
	conn, ok := input.Conn.(*gorillaws.Conn)
	if !ok {
		return ws.ErrInvalidConn
	}

	select {
	case <-uc.hub.done:
		return ws.ErrShuttingDown
	default:
	}

	if uc.hub.full() {
		return ws.ErrHubFull
	}

	symbols := normalizeSymbols(input.Symbols)
	c := newConnection(uc.hub, conn, input.UserID, symbols, uc.cfg, uc.logger)

	// Snapshot before deltas. The bus replays nothing, so the client must
	// see current state first or a quiet market leaves it stateless.
	status, err := uc.activityUC.GetStatus(ctx)
	if err != nil {
		uc.logger.Errorf(ctx, "internal.websocket.usecase.Register: %v", err)
		return err
	}
	uc.push(c, bus.TopicServerStatus, status)

	uc.subscribe(c)

	uc.hub.register <- c
	c.start()
	return nil
}

// subscribe bridges the bus topics this connection cares about onto its send
// channel. Handlers run on bus goroutines; enqueue never blocks them.
func (uc *implUseCase) subscribe(c *connection) {
	forward := func(topic string, payload any) {
		uc.push(c, topic, payload)
	}

	c.unsubs = append(c.unsubs,
		uc.bus.Subscribe(bus.TopicServerStatus, forward),
		uc.bus.Subscribe(bus.TopicMarketStatus, forward),
		uc.bus.Subscribe(bus.TopicUserAlert(c.userID), forward),
	)
	for _, sym := range c.symbols {
		c.unsubs = append(c.unsubs, uc.bus.Subscribe(bus.TopicStockUpdate(sym), forward))
	}
}

func (uc *implUseCase) push(c *connection, topic string, payload any) {
	frame, err := json.Marshal(ws.Event{Type: topic, At: time.Now(), Data: payload})
	if err != nil {
		uc.logger.Errorf(context.Background(), "internal.websocket.usecase.push: marshal topic %s: %v", topic, err)
		return
	}
	c.enqueue(frame)
}

func (uc *implUseCase) GetStats(ctx context.Context) (ws.HubStats, error) {
	return uc.hub.stats(), nil
}

func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
