package http

import (
	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/middleware"
)

// RegisterRoutes registers the alert routes. Everything is user-scoped and
// requires authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	g := r.Group("/alerts", mw.Auth())
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.POST("/preview", h.Preview)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.POST("/:id/reset", h.Reset)
	}
}
