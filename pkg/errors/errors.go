package errors

import (
	"fmt"
	"strings"
)

// NewValidationError creates a new validation error.
func NewValidationError(code int, field string, messages ...string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Messages: messages}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, strings.Join(e.Messages, ", "))
}

// NewValidationErrorCollector creates a new validation error collector.
func NewValidationErrorCollector() *ValidationErrorCollector {
	return &ValidationErrorCollector{errors: make([]*ValidationError, 0)}
}

func (c *ValidationErrorCollector) Add(err *ValidationError) *ValidationErrorCollector {
	c.errors = append(c.errors, err)
	return c
}

func (c *ValidationErrorCollector) HasError() bool {
	return len(c.errors) > 0
}

func (c *ValidationErrorCollector) Errors() []*ValidationError {
	return c.errors
}

func (c *ValidationErrorCollector) Error() string {
	var msgs []string
	for _, err := range c.errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, ", ")
}

// NewUpstreamDataError creates a new upstream market-data error.
func NewUpstreamDataError(symbol, reason string) *UpstreamDataError {
	return &UpstreamDataError{Symbol: symbol, Reason: reason}
}

func (e *UpstreamDataError) Error() string {
	return fmt.Sprintf("upstream data error for %s: %s", e.Symbol, e.Reason)
}

// NewDeliveryError creates a new notification delivery error.
func NewDeliveryError(channel, reason string) *DeliveryError {
	return &DeliveryError{Channel: channel, Reason: reason}
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery via %s failed: %s", e.Channel, e.Reason)
}

// NewSchedulerClockError creates a new scheduler clock/config error.
func NewSchedulerClockError(reason string) *SchedulerClockError {
	return &SchedulerClockError{Reason: reason}
}

func (e *SchedulerClockError) Error() string {
	return fmt.Sprintf("scheduler clock error: %s", e.Reason)
}
