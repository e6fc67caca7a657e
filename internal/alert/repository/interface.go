package repository

import (
	"context"
	"errors"
	"time"

	"stockwatch-srv/internal/model"
)

// ErrNotFound is returned when a queried alert does not exist for the user.
var ErrNotFound = errors.New("alert record not found")

// ListOptions narrows a List query.
type ListOptions struct {
	Symbol    string
	Triggered *bool
}

// Repository persists alerts. User-scoped reads never leak another user's
// rows.
type Repository interface {
	Create(ctx context.Context, alert model.Alert) error
	Update(ctx context.Context, alert model.Alert) error
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (model.Alert, error)
	List(ctx context.Context, userID string, opts ListOptions) ([]model.Alert, error)

	// ListEligible loads every active, non-triggered alert across all users.
	// The engine calls it to (re)build its evaluation snapshot.
	ListEligible(ctx context.Context) ([]model.Alert, error)

	// MarkTriggered records a trigger. Only the trigger fields change.
	MarkTriggered(ctx context.Context, id string, at time.Time) error

	// ClearTriggered rearms alerts. With no ids it rearms every alert.
	ClearTriggered(ctx context.Context, ids []string) error
}
