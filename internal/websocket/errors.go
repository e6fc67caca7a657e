package websocket

import "errors"

var (
	// ErrHubFull is returned when MaxConnections is reached.
	ErrHubFull = errors.New("websocket: connection limit reached")
	// ErrInvalidConn is returned when Register receives something that is not
	// an upgraded gorilla connection.
	ErrInvalidConn = errors.New("websocket: invalid connection type")
	// ErrShuttingDown is returned when Register races a Shutdown.
	ErrShuttingDown = errors.New("websocket: hub is shutting down")
)
