package mysql

import (
	"context"
	"time"

	"stockwatch-srv/internal/model"
	"stockwatch-srv/internal/notification/repository"

	"github.com/friendsofgo/errors"
)

func (r *implRepository) CreateJob(ctx context.Context, job model.NotificationJob) error {
	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.mysql.CreateJob: %v", err)
		return errors.Wrap(err, "create notification job")
	}
	return nil
}

func (r *implRepository) UpdateJob(ctx context.Context, id string, state model.JobState, attempts int) error {
	res := r.db.WithContext(ctx).
		Model(&model.NotificationJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"state":      state,
			"attempts":   attempts,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.notification.repository.mysql.UpdateJob: %v", res.Error)
		return errors.Wrap(res.Error, "update notification job")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) ListJobs(ctx context.Context, userID string, limit int) ([]model.NotificationJob, error) {
	if limit <= 0 {
		limit = 50
	}

	var jobs []model.NotificationJob
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.mysql.ListJobs: %v", err)
		return nil, errors.Wrap(err, "list notification jobs")
	}
	return jobs, nil
}
