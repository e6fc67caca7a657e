package alert

import (
	"context"

	"stockwatch-srv/internal/model"
)

// UseCase owns alert CRUD and the tick evaluation engine. The engine keeps an
// in-memory per-symbol set of eligible alerts, refreshed by the CRUD paths.
type UseCase interface {
	// CRUD. All operations are scoped to the owning user.
	Create(ctx context.Context, input CreateInput) (model.Alert, error)
	Update(ctx context.Context, userID, id string, input UpdateInput) (model.Alert, error)
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (model.Alert, error)
	List(ctx context.Context, userID string, filter Filter) ([]model.Alert, error)

	// Reset clears the triggered state so the alert is evaluated again.
	Reset(ctx context.Context, userID, id string) (model.Alert, error)

	// Evaluate runs every eligible alert on the tick's symbol against the
	// tick. Satisfied alerts are marked triggered and handed to the
	// dispatcher. Never blocks on delivery.
	Evaluate(ctx context.Context, tick model.PriceTick)

	// WouldTrigger is the pure dry-run twin of Evaluate: same predicate
	// table, no state consulted or mutated beyond per-symbol tick memory
	// reads. Exists so a caller can preview an alert before saving it.
	WouldTrigger(ctx context.Context, tick model.PriceTick, condition model.AlertCondition, threshold *float64) (Preview, error)

	// RearmAll clears the triggered flag on every alert, typically at
	// session open so daily alerts fire once per day.
	RearmAll(ctx context.Context) error
}

// Dispatcher is the engine's hand-off to notification delivery.
// Submit must return immediately; delivery happens on dispatcher workers.
type Dispatcher interface {
	Submit(ctx context.Context, event model.AlertTriggered)
}
