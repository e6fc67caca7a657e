package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockwatch-srv/internal/model"
	pkgErrors "stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/response"
)

type ingestResult struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// IngestTicks accepts a feed batch and runs each tick through the ingester.
// @Summary Ingest market-data ticks
// @Tags Market
// @Accept json
// @Produce json
// @Param body body []model.PriceTick true "Tick batch"
// @Success 200 {object} response.Resp{data=ingestResult}
// @Failure 400 {object} response.Resp
// @Router /internal/api/v1/ticks [POST]
func (h *Handler) IngestTicks(c *gin.Context) {
	var ticks []model.PriceTick
	if err := c.ShouldBindJSON(&ticks); err != nil {
		response.HttpError(c, pkgErrors.NewHTTPError(4000, "body must be an array of ticks", http.StatusBadRequest))
		return
	}

	accepted := h.uc.IngestBatch(c.Request.Context(), ticks)
	response.OK(c, ingestResult{
		Accepted: accepted,
		Rejected: len(ticks) - accepted,
	})
}
