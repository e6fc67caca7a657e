package mysql

import (
	"context"
	"time"

	"stockwatch-srv/internal/alert/repository"
	"stockwatch-srv/internal/model"

	"github.com/friendsofgo/errors"
	"gorm.io/gorm"
)

func (r *implRepository) Create(ctx context.Context, alert model.Alert) error {
	if err := r.db.WithContext(ctx).Create(&alert).Error; err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.mysql.Create: %v", err)
		return errors.Wrap(err, "create alert")
	}
	return nil
}

func (r *implRepository) Update(ctx context.Context, alert model.Alert) error {
	res := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ? AND user_id = ?", alert.ID, alert.UserID).
		Select("condition", "threshold", "message", "email", "is_active", "triggered", "triggered_at", "updated_at").
		Updates(&alert)
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.alert.repository.mysql.Update: %v", res.Error)
		return errors.Wrap(res.Error, "update alert")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Alert{})
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.alert.repository.mysql.Delete: %v", res.Error)
		return errors.Wrap(res.Error, "delete alert")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) Get(ctx context.Context, userID, id string) (model.Alert, error) {
	var alert model.Alert
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.mysql.Get: %v", err)
		return model.Alert{}, errors.Wrap(err, "get alert")
	}
	return alert, nil
}

func (r *implRepository) List(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Alert, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if opts.Symbol != "" {
		q = q.Where("symbol = ?", opts.Symbol)
	}
	if opts.Triggered != nil {
		q = q.Where("triggered = ?", *opts.Triggered)
	}

	var alerts []model.Alert
	if err := q.Order("created_at DESC").Find(&alerts).Error; err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.mysql.List: %v", err)
		return nil, errors.Wrap(err, "list alerts")
	}
	return alerts, nil
}

func (r *implRepository) ListEligible(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND triggered = ?", true, false).
		Find(&alerts).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.mysql.ListEligible: %v", err)
		return nil, errors.Wrap(err, "list eligible alerts")
	}
	return alerts, nil
}

func (r *implRepository) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"triggered":    true,
			"triggered_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.alert.repository.mysql.MarkTriggered: %v", res.Error)
		return errors.Wrap(res.Error, "mark alert triggered")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) ClearTriggered(ctx context.Context, ids []string) error {
	q := r.db.WithContext(ctx).Model(&model.Alert{}).Where("triggered = ?", true)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}

	err := q.Updates(map[string]any{
		"triggered":    false,
		"triggered_at": nil,
	}).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.mysql.ClearTriggered: %v", err)
		return errors.Wrap(err, "clear triggered alerts")
	}
	return nil
}
