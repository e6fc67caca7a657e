package http

import (
	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/middleware"
)

// RegisterRoutes registers the websocket routes. Auth runs before the
// upgrade; the token may arrive as a query param for browser clients.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	g := r.Group("/ws", mw.Auth())
	{
		g.GET("", h.Connect)
		g.GET("/stats", mw.AdminOnly(), h.GetStats)
	}
}
