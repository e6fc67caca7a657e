package model

import "time"

// NotificationChannel names a delivery transport.
type NotificationChannel string

const (
	ChannelPush  NotificationChannel = "push"
	ChannelEmail NotificationChannel = "email"
	ChannelAPNs  NotificationChannel = "apns"
)

// JobState is the delivery state of a notification job.
type JobState string

const (
	JobPending   JobState = "pending"
	JobDelivered JobState = "delivered"
	JobFailed    JobState = "failed"
)

// NotificationJob is one delivery attempt unit created per channel per
// trigger. The idempotency key is (alert id, trigger timestamp).
type NotificationJob struct {
	ID             string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AlertID        string              `gorm:"index;type:varchar(36);not null" json:"alert_id"`
	UserID         string              `gorm:"type:varchar(36);not null" json:"user_id"`
	Recipient      string              `gorm:"type:varchar(100)" json:"recipient"`
	Message        string              `gorm:"type:text" json:"message"`
	Channel        NotificationChannel `gorm:"type:varchar(10);not null" json:"channel"`
	State          JobState            `gorm:"type:varchar(10);not null" json:"state"`
	Attempts       int                 `gorm:"not null;default:0" json:"attempts"`
	IdempotencyKey string              `gorm:"index;type:varchar(80);not null" json:"idempotency_key"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (NotificationJob) TableName() string {
	return "notification_jobs"
}

// AlertTriggered is the event the evaluation engine emits to the dispatcher.
type AlertTriggered struct {
	Alert       Alert
	Tick        PriceTick
	Message     string
	TriggeredAt time.Time
}

// IdempotencyKey derives the duplicate-suppression key for this trigger.
func (e AlertTriggered) IdempotencyKey() string {
	return e.Alert.ID + ":" + e.TriggeredAt.UTC().Format(time.RFC3339)
}
