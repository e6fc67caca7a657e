package model

import "time"

// ActivityState is the scheduler operating mode.
type ActivityState string

const (
	StateActive  ActivityState = "ACTIVE"
	StateStandby ActivityState = "STANDBY"
)

// ServerStatus is a projection of the scheduler state plus wall-clock time.
// NextStart and NextEnd are always strictly in the future of CurrentTime.
type ServerStatus struct {
	IsActive    bool      `json:"is_active"`
	Timezone    string    `json:"timezone"`
	ActiveHours string    `json:"active_hours"`
	CurrentTime time.Time `json:"current_time"`
	NextStart   time.Time `json:"next_start"`
	NextEnd     time.Time `json:"next_end"`
}

// SystemActor is the audit-log actor for transitions the scheduler makes on
// its own (boundary crossings, override expiry).
const SystemActor = "system"

// ActivityLogEntry is one append-only audit record. Never mutated or deleted.
type ActivityLogEntry struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details,omitempty"`
	Actor     string    `gorm:"type:varchar(36);not null" json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

func (ActivityLogEntry) TableName() string {
	return "activity_log"
}
