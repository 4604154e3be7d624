package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/stats/service"
)

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(service service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", h.get)
}

// @Summary Platform counters
// @Description Returns raffle, user and paid purchase totals
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Router /stats [get]
func (h *StatsHandler) get(c *gin.Context) {
	stats, err := h.service.Get(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
