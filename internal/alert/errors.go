package alert

import "errors"

var (
	// ErrNotFound covers both a missing alert and one owned by another user.
	ErrNotFound = errors.New("alert not found")
	// ErrInvalidCondition means the condition is not in the supported set.
	ErrInvalidCondition = errors.New("invalid alert condition")
	// ErrThresholdRequired means the chosen condition needs a numeric threshold.
	ErrThresholdRequired = errors.New("condition requires a threshold")
	// ErrSymbolRequired means the alert has no symbol.
	ErrSymbolRequired = errors.New("symbol is required")
)
