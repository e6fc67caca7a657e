package notification

import (
	"context"

	"stockwatch-srv/internal/model"
)

// UseCase is the notification dispatcher: it receives trigger events from
// the evaluation engine and fans them out per delivery channel on a worker
// pool. The engine-facing contract is submit-and-return.
type UseCase interface {
	// Submit enqueues one trigger event. Never blocks: if the queue is full
	// the event is dropped and logged.
	Submit(ctx context.Context, event model.AlertTriggered)

	// Run starts the delivery workers. Blocks until Shutdown.
	Run()

	// Shutdown stops accepting events and drains the queue. Jobs already
	// queued are delivered before it returns.
	Shutdown(ctx context.Context) error
}
