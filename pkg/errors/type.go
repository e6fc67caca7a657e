package errors

// ValidationError represents a malformed request field. It is rejected
// synchronously and never reaches engine state.
type ValidationError struct {
	Code     int
	Field    string
	Messages []string
}

// ValidationErrorCollector accumulates validation errors for a whole request.
type ValidationErrorCollector struct {
	errors []*ValidationError
}

// HTTPError represents an HTTP error with status code and message.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

// UpstreamDataError marks a malformed or incomplete market-data tick.
// The affected evaluation is skipped and logged; it is never fatal.
type UpstreamDataError struct {
	Symbol string
	Reason string
}

// DeliveryError marks a notification channel failure. It is retried per the
// dispatcher backoff policy, then logged as terminal for that job only.
type DeliveryError struct {
	Channel string
	Reason  string
}

// SchedulerClockError means the current time or the active-hours window could
// not be resolved. The scheduler must not guess a state, so this propagates.
type SchedulerClockError struct {
	Reason string
}
