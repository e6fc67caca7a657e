package activity

import "time"

// Config drives the scheduler state machine.
type Config struct {
	// Timezone is the IANA exchange timezone, e.g. "Asia/Ho_Chi_Minh".
	Timezone string
	// OpenTime/CloseTime bound the active-hours window, "HH:MM" local time.
	// The window applies Monday through Friday.
	OpenTime  string
	CloseTime string
	// TickInterval is the re-evaluation cadence (default one minute).
	TickInterval time.Duration
	// OverrideSticky keeps a manual override in force past the next scheduled
	// boundary. Default false: scheduled state reasserts at the boundary.
	OverrideSticky bool
}

// OverrideResult is the outcome of a force-activate/deactivate command.
type OverrideResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Audit log action names written by the scheduler.
const (
	ActionForceActivate   = "force_activate"
	ActionForceDeactivate = "force_deactivate"
	ActionTransition      = "schedule_transition"
)
