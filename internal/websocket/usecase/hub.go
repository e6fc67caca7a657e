package usecase

import (
	"context"
	"sync"

	"stockwatch-srv/internal/websocket"
	"stockwatch-srv/pkg/log"
)

// hub tracks live connections per user and owns their lifecycle. All map
// mutation happens on the run goroutine; reads take the lock.
type hub struct {
	connections map[string][]*connection

	register   chan *connection
	unregister chan *connection

	mu sync.RWMutex

	maxConnections int

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	logger log.Logger
}

func newHub(logger log.Logger, maxConnections int) *hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &hub{
		connections:    make(map[string][]*connection),
		register:       make(chan *connection, 64),
		unregister:     make(chan *connection, 64),
		maxConnections: maxConnections,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
		logger:         logger,
	}
}

func (h *hub) run() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c)
		}
	}
}

func (h *hub) add(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[c.userID] = append(h.connections[c.userID], c)
}

func (h *hub) remove(c *connection) {
	h.mu.Lock()
	conns := h.connections[c.userID]
	for i, cand := range conns {
		if cand == c {
			h.connections[c.userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.connections[c.userID]) == 0 {
		delete(h.connections, c.userID)
	}
	h.mu.Unlock()

	c.teardown()
}

func (h *hub) closeAll() {
	h.mu.Lock()
	var all []*connection
	for _, conns := range h.connections {
		all = append(all, conns...)
	}
	h.connections = make(map[string][]*connection)
	h.mu.Unlock()

	for _, c := range all {
		c.teardown()
	}
}

func (h *hub) stats() websocket.HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, conns := range h.connections {
		total += len(conns)
	}
	return websocket.HubStats{
		ActiveConnections: total,
		UniqueUsers:       len(h.connections),
	}
}

func (h *hub) full() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, conns := range h.connections {
		total += len(conns)
	}
	return total >= h.maxConnections
}
