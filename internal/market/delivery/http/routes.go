package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the internal feed-ingestion routes. These sit on
// the internal API surface, reachable only from the feed bridge.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/ticks")
	{
		g.POST("", h.IngestTicks)
	}
}
