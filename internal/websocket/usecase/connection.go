package usecase

import (
	"context"
	"sync"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"stockwatch-srv/internal/websocket"
	"stockwatch-srv/pkg/log"
)

const sendBuffer = 256

// connection is one client socket plus its bus subscriptions. Writes go
// through the send channel so writePump is the single writer.
type connection struct {
	hub  *hub
	conn *gorillaws.Conn

	userID  string
	symbols []string

	send chan []byte

	// unsubs tear down this connection's bus subscriptions.
	unsubs []func()

	cfg    websocket.Config
	logger log.Logger

	mu       sync.Mutex
	closed   bool
	shutdown sync.Once
}

func newConnection(h *hub, conn *gorillaws.Conn, userID string, symbols []string, cfg websocket.Config, logger log.Logger) *connection {
	return &connection{
		hub:     h,
		conn:    conn,
		userID:  userID,
		symbols: symbols,
		send:    make(chan []byte, sendBuffer),
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *connection) start() {
	go c.writePump()
	go c.readPump()
}

// enqueue hands a frame to writePump without blocking. A full buffer means a
// client that cannot keep up with the tick stream; dropping is acceptable
// because every stream is either resyncable by snapshot or periodic.
func (c *connection) enqueue(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
		c.logger.Warnf(context.Background(), "internal.websocket.enqueue: dropping frame, slow client for user %s", c.userID)
	}
}

// teardown detaches the bus subscriptions and closes the socket. Safe to call
// more than once; the hub and Shutdown may race here.
func (c *connection) teardown() {
	c.shutdown.Do(func() {
		for _, unsub := range c.unsubs {
			unsub()
		}

		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
	})
}

// readPump discards client frames. Clients never send application data; the
// reader exists to service pongs and detect disconnects.
func (c *connection) readPump() {
	defer func() {
		// The hub may already be gone during shutdown; don't block on it.
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if gorillaws.IsUnexpectedCloseError(err, gorillaws.CloseGoingAway, gorillaws.CloseNormalClosure, gorillaws.CloseAbnormalClosure) {
				c.logger.Warnf(context.Background(), "internal.websocket.readPump: user %s: %v", c.userID, err)
			}
			return
		}
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(gorillaws.CloseMessage, gorillaws.FormatCloseMessage(gorillaws.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(gorillaws.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(gorillaws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
