package activity

import "errors"

var (
	// ErrInvalidWindow means the configured open/close times cannot form a
	// valid active-hours window.
	ErrInvalidWindow = errors.New("activity: invalid active-hours window")
)
