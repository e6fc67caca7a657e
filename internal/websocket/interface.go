package websocket

import "context"

// UseCase manages websocket client connections and bridges bus topics onto
// them. Clients get a ServerStatus snapshot on connect, then deltas only:
// the bus keeps no history, so snapshot-then-subscribe is the contract.
type UseCase interface {
	Run()
	Shutdown(ctx context.Context) error

	// Register attaches an upgraded connection to the hub and wires its
	// topic subscriptions.
	Register(ctx context.Context, input ConnectionInput) error

	GetStats(ctx context.Context) (HubStats, error)
}
