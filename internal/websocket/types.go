package websocket

import "time"

// ConnectionInput carries everything needed to attach one upgraded socket.
type ConnectionInput struct {
	UserID string
	// Symbols is the optional per-connection stock-update filter. Empty means
	// the client receives no per-symbol ticks, only status and alert events.
	Symbols []string
	// Conn is the upgraded *gorilla/websocket.Conn, typed loosely so the
	// delivery layer does not leak into this interface.
	Conn any
}

// HubStats is a point-in-time view of hub occupancy.
type HubStats struct {
	ActiveConnections int `json:"active_connections"`
	UniqueUsers       int `json:"unique_users"`
}

// Config bounds the connection lifecycle timers.
type Config struct {
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	MaxConnections int
}

// Normalize fills zero fields with workable defaults. PingPeriod must stay
// under PongWait or healthy clients get reaped between pings.
func (c Config) Normalize() Config {
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = c.PongWait * 9 / 10
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 1024
	}
	if c.MaxConnections <= 0 {
		c.MaxConnections = 10000
	}
	return c
}

// Event is the wire frame pushed to clients. Type carries the bus topic the
// payload originated from ("server_status", "stock-update-FPT", ...).
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}
