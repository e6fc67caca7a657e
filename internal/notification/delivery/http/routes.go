package http

import (
	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/middleware"
)

// RegisterRoutes registers notification history and device-token routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	g := r.Group("/notifications", mw.Auth())
	{
		g.GET("", h.ListJobs)
		g.POST("/devices", h.RegisterDevice)
		g.DELETE("/devices/:token", h.UnregisterDevice)
	}
}
