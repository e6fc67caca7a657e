package http

import (
	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/middleware"
)

// RegisterRoutes registers the activity routes. Status is public, overrides
// and the audit log require an authenticated admin.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	g := r.Group("/activity")
	{
		g.GET("/server-status", h.GetServerStatus)

		admin := g.Group("", mw.Auth(), mw.AdminOnly())
		{
			admin.POST("/force-activate", h.ForceActivate)
			admin.POST("/force-deactivate", h.ForceDeactivate)
			admin.POST("/log", h.AppendLog)
			admin.GET("/log", h.ListLog)
		}
	}
}
