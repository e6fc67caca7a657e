package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stockwatch-srv/internal/model"
	"stockwatch-srv/internal/notification/repository"
	pkgErrors "stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/response"
	"stockwatch-srv/pkg/scope"
)

type registerDeviceReq struct {
	DeviceToken string `json:"device_token" binding:"required"`
	Platform    string `json:"platform"`
}

// ListJobs returns the user's notification history, newest first.
// @Summary List notification jobs
// @Tags Notification
// @Produce json
// @Param limit query int false "Max entries (default 50)"
// @Success 200 {object} response.Resp{data=[]model.NotificationJob}
// @Router /notifications [GET]
func (h *Handler) ListJobs(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	limit := 50
	if v, present := c.GetQuery("limit"); present {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	jobs, err := h.repo.ListJobs(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "internal.notification.delivery.http.ListJobs: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, jobs)
}

// RegisterDevice stores a device token for APNs delivery.
// @Summary Register a device token
// @Tags Notification
// @Accept json
// @Produce json
// @Param body body registerDeviceReq true "Device token"
// @Success 200 {object} response.Resp{data=model.Device}
// @Failure 400 {object} response.Resp
// @Router /notifications/devices [POST]
func (h *Handler) RegisterDevice(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req registerDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(4000, "device_token is required", http.StatusBadRequest))
		return
	}

	device := model.Device{
		ID:          uuid.NewString(),
		UserID:      userID,
		DeviceToken: req.DeviceToken,
		Platform:    req.Platform,
	}
	if err := h.repo.SaveDevice(c.Request.Context(), device); err != nil {
		h.logger.Errorf(c.Request.Context(), "internal.notification.delivery.http.RegisterDevice: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, device)
}

// UnregisterDevice removes a device token.
// @Summary Unregister a device token
// @Tags Notification
// @Produce json
// @Param token path string true "Device token"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /notifications/devices/{token} [DELETE]
func (h *Handler) UnregisterDevice(c *gin.Context) {
	userID, ok := scope.GetUserIDFromContext(c.Request.Context())
	if !ok {
		response.Unauthorized(c)
		return
	}

	err := h.repo.DeleteDevice(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		if err == repository.ErrNotFound {
			response.HttpError(c, pkgErrors.NewHTTPError(40402, "device not found", http.StatusNotFound))
			return
		}
		h.logger.Errorf(c.Request.Context(), "internal.notification.delivery.http.UnregisterDevice: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}
