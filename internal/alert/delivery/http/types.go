package http

import (
	"stockwatch-srv/internal/alert"
	"stockwatch-srv/internal/model"
)

type createAlertReq struct {
	Symbol    string   `json:"symbol" binding:"required"`
	Type      string   `json:"type"`
	Condition string   `json:"condition" binding:"required"`
	Threshold *float64 `json:"threshold"`
	Message   string   `json:"message"`
	Email     string   `json:"email"`
}

func (r createAlertReq) toInput(userID string) alert.CreateInput {
	return alert.CreateInput{
		UserID:    userID,
		Symbol:    r.Symbol,
		Type:      model.AlertType(r.Type),
		Condition: model.AlertCondition(r.Condition),
		Threshold: r.Threshold,
		Message:   r.Message,
		Email:     r.Email,
	}
}

type updateAlertReq struct {
	Condition *string  `json:"condition"`
	Threshold *float64 `json:"threshold"`
	Message   *string  `json:"message"`
	Email     *string  `json:"email"`
	IsActive  *bool    `json:"is_active"`
}

func (r updateAlertReq) toInput() alert.UpdateInput {
	input := alert.UpdateInput{
		Threshold: r.Threshold,
		Message:   r.Message,
		Email:     r.Email,
		IsActive:  r.IsActive,
	}
	if r.Condition != nil {
		cond := model.AlertCondition(*r.Condition)
		input.Condition = &cond
	}
	return input
}

// previewReq carries a hypothetical alert plus the tick to test it against.
type previewReq struct {
	Condition string          `json:"condition" binding:"required"`
	Threshold *float64        `json:"threshold"`
	Tick      model.PriceTick `json:"tick" binding:"required"`
}
