package mysql

import (
	"context"

	"stockwatch-srv/internal/model"

	"github.com/friendsofgo/errors"
)

func (r *implRepository) Append(ctx context.Context, entry model.ActivityLogEntry) error {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		r.l.Errorf(ctx, "internal.activity.repository.mysql.Append.Create: %v", err)
		return errors.Wrap(err, "append activity log entry")
	}
	return nil
}

func (r *implRepository) List(ctx context.Context, limit int) ([]model.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []model.ActivityLogEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.activity.repository.mysql.List.Find: %v", err)
		return nil, errors.Wrap(err, "list activity log entries")
	}

	return entries, nil
}
