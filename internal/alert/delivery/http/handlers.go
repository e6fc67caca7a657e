package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/alert"
	"stockwatch-srv/internal/model"
	pkgErrors "stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/response"
	"stockwatch-srv/pkg/scope"
)

// Create registers a new alert for the authenticated user.
// @Summary Create an alert
// @Tags Alert
// @Accept json
// @Produce json
// @Param body body createAlertReq true "Alert definition"
// @Success 200 {object} response.Resp{data=model.Alert}
// @Failure 400 {object} response.Resp
// @Router /alerts [POST]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req createAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(4000, "symbol and condition are required", http.StatusBadRequest))
		return
	}

	created, err := h.uc.Create(c.Request.Context(), req.toInput(userID))
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, created)
}

// List returns the user's alerts, optionally filtered.
// @Summary List alerts
// @Tags Alert
// @Produce json
// @Param symbol query string false "Filter by symbol"
// @Param triggered query bool false "Filter by triggered state"
// @Success 200 {object} response.Resp{data=[]model.Alert}
// @Router /alerts [GET]
func (h *Handler) List(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	filter := alert.Filter{Symbol: c.Query("symbol")}
	if v, present := c.GetQuery("triggered"); present {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Triggered = &b
		}
	}

	alerts, err := h.uc.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, alerts)
}

// Get returns one alert.
// @Summary Get an alert
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp{data=model.Alert}
// @Failure 404 {object} response.Resp
// @Router /alerts/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	found, err := h.uc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, found)
}

// Update mutates the user-editable fields of an alert.
// @Summary Update an alert
// @Tags Alert
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param body body updateAlertReq true "Fields to change"
// @Success 200 {object} response.Resp{data=model.Alert}
// @Failure 404 {object} response.Resp
// @Router /alerts/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updateAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(4000, "invalid request body", http.StatusBadRequest))
		return
	}

	updated, err := h.uc.Update(c.Request.Context(), userID, c.Param("id"), req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, updated)
}

// Delete removes an alert.
// @Summary Delete an alert
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /alerts/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, nil)
}

// Reset clears the triggered state so the alert fires again.
// @Summary Reset a triggered alert
// @Tags Alert
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} response.Resp{data=model.Alert}
// @Failure 404 {object} response.Resp
// @Router /alerts/{id}/reset [POST]
func (h *Handler) Reset(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	reset, err := h.uc.Reset(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, reset)
}

// Preview dry-runs a condition against a tick without touching any alert.
// @Summary Preview whether an alert would fire
// @Tags Alert
// @Accept json
// @Produce json
// @Param body body previewReq true "Condition and tick"
// @Success 200 {object} response.Resp{data=alert.Preview}
// @Failure 422 {object} response.Resp
// @Router /alerts/preview [POST]
func (h *Handler) Preview(c *gin.Context) {
	var req previewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(4000, "condition and tick are required", http.StatusBadRequest))
		return
	}

	preview, err := h.uc.WouldTrigger(c.Request.Context(), req.Tick, model.AlertCondition(req.Condition), req.Threshold)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, preview)
}
