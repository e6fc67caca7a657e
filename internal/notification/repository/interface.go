package repository

import (
	"context"
	"errors"

	"stockwatch-srv/internal/model"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("notification record not found")

// Repository persists notification jobs and device tokens.
type Repository interface {
	CreateJob(ctx context.Context, job model.NotificationJob) error
	UpdateJob(ctx context.Context, id string, state model.JobState, attempts int) error
	ListJobs(ctx context.Context, userID string, limit int) ([]model.NotificationJob, error)

	SaveDevice(ctx context.Context, device model.Device) error
	DeleteDevice(ctx context.Context, userID, deviceToken string) error
	ListDevices(ctx context.Context, userID string) ([]model.Device, error)
}
