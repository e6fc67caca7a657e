package mysql

import (
	"context"

	"stockwatch-srv/internal/model"
	"stockwatch-srv/internal/notification/repository"

	"github.com/friendsofgo/errors"
	"gorm.io/gorm/clause"
)

func (r *implRepository) SaveDevice(ctx context.Context, device model.Device) error {
	// Re-registering the same token refreshes the row instead of duplicating.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "device_token"}},
			DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
		}).
		Create(&device).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.mysql.SaveDevice: %v", err)
		return errors.Wrap(err, "save device")
	}
	return nil
}

func (r *implRepository) DeleteDevice(ctx context.Context, userID, deviceToken string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Delete(&model.Device{})
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.notification.repository.mysql.DeleteDevice: %v", res.Error)
		return errors.Wrap(res.Error, "delete device")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) ListDevices(ctx context.Context, userID string) ([]model.Device, error) {
	var devices []model.Device
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&devices).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.mysql.ListDevices: %v", err)
		return nil, errors.Wrap(err, "list devices")
	}
	return devices, nil
}
