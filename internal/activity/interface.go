package activity

import (
	"context"

	"stockwatch-srv/internal/model"
)

// UseCase is the market-activity scheduler: a two-state machine
// (ACTIVE/STANDBY) driven by the configured trading-hours window, with manual
// override support. At most one instance exists process-wide.
type UseCase interface {
	// GetStatus projects the current state. Pure: no side effects.
	GetStatus(ctx context.Context) (model.ServerStatus, error)

	// ForceActivate forces ACTIVE regardless of schedule. Idempotent:
	// forcing the current state is a no-op success and emits no event.
	ForceActivate(ctx context.Context, actor, reason string) (OverrideResult, error)
	// ForceDeactivate forces STANDBY regardless of schedule.
	ForceDeactivate(ctx context.Context, actor, reason string) (OverrideResult, error)

	// IsActive reports the current effective state. Cheap, for the tick path.
	IsActive() bool

	// Log appends an arbitrary audit entry.
	Log(ctx context.Context, actor, action string, details map[string]any) error

	// Reevaluate resolves override expiry against the schedule and publishes
	// transitions. The Run loop calls it once per tick interval.
	Reevaluate(ctx context.Context)

	// OnSessionOpen registers a callback invoked when a trading session opens.
	OnSessionOpen(fn func(ctx context.Context))

	// Run starts the periodic re-evaluation loop. Blocks until Shutdown.
	Run()
	Shutdown(ctx context.Context) error
}
