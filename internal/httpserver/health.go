package httpserver

import (
	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/websocket"
	"stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/response"
)

// healthCheck
// @Summary Health Check
// @Description Reports overall service health including hub occupancy and scheduler state
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	redisState := "disabled"
	if srv.redis != nil {
		redisState = "connected"
		if err := srv.redis.Ping(ctx); err != nil {
			redisState = "unreachable"
		}
	}

	hubStats, err := srv.wsUC.GetStats(ctx)
	if err != nil {
		hubStats = websocket.HubStats{}
	}

	response.OK(c, gin.H{
		"status":             "healthy",
		"service":            "stockwatch-srv",
		"market_active":      srv.activityUC.IsActive(),
		"active_connections": hubStats.ActiveConnections,
		"unique_users":       hubStats.UniqueUsers,
		"redis":              redisState,
	})
}

// readyCheck
// @Summary Readiness Check
// @Description Reports whether the service can serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} response.Resp "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if srv.redis != nil {
		if err := srv.redis.Ping(ctx); err != nil {
			response.HttpError(c, errors.NewHTTPError(50301, "redis connection not available", 503))
			return
		}
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "stockwatch-srv",
	})
}

// liveCheck
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "stockwatch-srv",
	})
}
