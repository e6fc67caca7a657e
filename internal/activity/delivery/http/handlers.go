package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/response"
	"stockwatch-srv/pkg/scope"
)

// GetServerStatus projects the scheduler state.
// @Summary Get server activity status
// @Description Current ACTIVE/STANDBY state plus the next window boundaries.
// @Tags Activity
// @Produce json
// @Success 200 {object} response.Resp{data=model.ServerStatus}
// @Router /activity/server-status [GET]
func (h *Handler) GetServerStatus(c *gin.Context) {
	status, err := h.uc.GetStatus(c.Request.Context())
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "internal.activity.delivery.http.GetServerStatus: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// ForceActivate forces the scheduler ACTIVE.
// @Summary Force-activate the server
// @Tags Activity
// @Accept json
// @Produce json
// @Param body body overrideReq true "Override reason"
// @Success 200 {object} response.Resp{data=activity.OverrideResult}
// @Failure 400 {object} response.Resp
// @Router /activity/force-activate [POST]
func (h *Handler) ForceActivate(c *gin.Context) {
	var req overrideReq
	_ = c.ShouldBindJSON(&req)

	res, err := h.uc.ForceActivate(c.Request.Context(), actor(c), req.Reason)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "internal.activity.delivery.http.ForceActivate: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ForceDeactivate forces the scheduler STANDBY.
// @Summary Force-deactivate the server
// @Tags Activity
// @Accept json
// @Produce json
// @Param body body overrideReq true "Override reason"
// @Success 200 {object} response.Resp{data=activity.OverrideResult}
// @Failure 400 {object} response.Resp
// @Router /activity/force-deactivate [POST]
func (h *Handler) ForceDeactivate(c *gin.Context) {
	var req overrideReq
	_ = c.ShouldBindJSON(&req)

	res, err := h.uc.ForceDeactivate(c.Request.Context(), actor(c), req.Reason)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "internal.activity.delivery.http.ForceDeactivate: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// AppendLog writes a manual audit entry.
// @Summary Append an audit-log entry
// @Tags Activity
// @Accept json
// @Produce json
// @Param body body appendLogReq true "Entry"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Router /activity/log [POST]
func (h *Handler) AppendLog(c *gin.Context) {
	var req appendLogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(4000, "action is required", http.StatusBadRequest))
		return
	}

	if err := h.uc.Log(c.Request.Context(), actor(c), req.Action, req.Details); err != nil {
		h.logger.Errorf(c.Request.Context(), "internal.activity.delivery.http.AppendLog: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// ListLog returns recent audit entries, newest first.
// @Summary List audit-log entries
// @Tags Activity
// @Produce json
// @Param limit query int false "Max entries (default 50)"
// @Success 200 {object} response.Resp{data=[]model.ActivityLogEntry}
// @Router /activity/log [GET]
func (h *Handler) ListLog(c *gin.Context) {
	limit := 50
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := parsePositiveInt(v); err == nil {
			limit = n
		}
	}

	entries, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "internal.activity.delivery.http.ListLog: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// actor resolves the audit actor from the verified JWT payload.
func actor(c *gin.Context) string {
	payload, ok := scope.GetPayloadFromContext(c.Request.Context())
	if !ok {
		return "anonymous"
	}
	if payload.Username != "" {
		return payload.Username
	}
	return payload.UserID
}
