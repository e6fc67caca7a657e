package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"stockwatch-srv/internal/websocket"
	"stockwatch-srv/pkg/response"
	"stockwatch-srv/pkg/scope"
)

// Connect
// @Summary Open the realtime push stream
// @Description Upgrades to a WebSocket. The first frame is a server_status snapshot, followed by market-status, per-user alert, and stock-update-<symbol> events for the symbols in the filter.
// @Tags WebSocket
// @Param symbols query string false "Comma-separated symbol filter, e.g. FPT,VNM"
// @Param token query string true "JWT, accepted here because browsers cannot set headers on WebSocket requests"
// @Success 101
// @Failure 401 {object} response.Resp "Unauthorized"
// @Router /ws [get]
func (h *Handler) Connect(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := scope.GetUserIDFromContext(ctx)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Warnf(ctx, "internal.websocket.delivery.http.Connect: %v", err)
		return
	}

	if err := h.uc.Register(ctx, websocket.ConnectionInput{
		UserID:  userID,
		Symbols: symbols,
		Conn:    conn,
	}); err != nil {
		h.logger.Errorf(ctx, "internal.websocket.delivery.http.Connect: %v", err)
		msg := gorillaws.FormatCloseMessage(gorillaws.CloseTryAgainLater, err.Error())
		_ = conn.WriteMessage(gorillaws.CloseMessage, msg)
		conn.Close()
		return
	}
}

// GetStats
// @Summary Hub occupancy
// @Tags WebSocket
// @Produce json
// @Success 200 {object} response.Resp{data=websocket.HubStats}
// @Router /ws/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.uc.GetStats(ctx)
	if err != nil {
		h.logger.Errorf(ctx, "internal.websocket.delivery.http.GetStats: %v", err)
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
