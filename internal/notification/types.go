package notification

import "time"

// Config tunes the dispatcher worker pool and retry policy.
type Config struct {
	Workers   int
	QueueSize int

	// Email retry policy.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// IdempotencyTTL bounds how long a trigger's idempotency key is
	// remembered for duplicate suppression.
	IdempotencyTTL time.Duration
}

// Normalize fills zero values with working defaults.
func (c Config) Normalize() Config {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = 500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.IdempotencyTTL <= 0 {
		c.IdempotencyTTL = 24 * time.Hour
	}
	return c
}

// AlertNotification is the payload pushed to a user's alert topic.
type AlertNotification struct {
	JobID       string    `json:"job_id"`
	AlertID     string    `json:"alert_id"`
	Symbol      string    `json:"symbol"`
	Message     string    `json:"message"`
	Price       float64   `json:"price"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// RegisterDeviceInput registers a device token for APNs delivery.
type RegisterDeviceInput struct {
	UserID      string
	DeviceToken string
	Platform    string
}
