package alert

import "stockwatch-srv/internal/model"

// CreateInput carries the user-supplied fields of a new alert.
type CreateInput struct {
	UserID    string
	Symbol    string
	Type      model.AlertType
	Condition model.AlertCondition
	Threshold *float64
	Message   string
	Email     string
}

// UpdateInput mutates an existing alert. Nil fields are left unchanged.
type UpdateInput struct {
	Condition *model.AlertCondition
	Threshold *float64
	Message   *string
	Email     *string
	IsActive  *bool
}

// Filter narrows a List call.
type Filter struct {
	Symbol    string
	Triggered *bool
}

// Preview is the outcome of a dry-run evaluation.
type Preview struct {
	WouldTrigger bool   `json:"would_trigger"`
	Message      string `json:"message,omitempty"`
}
