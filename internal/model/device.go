package model

import "time"

// Device is a registered mobile device token for APNs delivery.
type Device struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"index;type:varchar(36);not null" json:"user_id"`
	DeviceToken string    `gorm:"type:varchar(200);not null" json:"device_token"`
	Platform    string    `gorm:"type:varchar(10)" json:"platform"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Device) TableName() string {
	return "devices"
}
