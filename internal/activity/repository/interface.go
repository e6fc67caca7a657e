package repository

import (
	"context"
	"errors"

	"stockwatch-srv/internal/model"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("activity log entry not found")

// Repository persists the append-only audit trail.
type Repository interface {
	Append(ctx context.Context, entry model.ActivityLogEntry) error
	List(ctx context.Context, limit int) ([]model.ActivityLogEntry, error)
}
