package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/leaderboard/models"
	"raffle-tool-backend/internal/features/leaderboard/service"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	rankings := router.Group("/rankings")
	{
		rankings.GET("/top-buyers", h.topBuyers)
		rankings.GET("/daily-buyers", h.dailyBuyers)
	}
}

// @Summary All-time top buyers
// @Description Ranks buyers over all paid purchases by total spent
// @Tags rankings
// @Produce json
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {array} models.BuyerSummary
// @Router /rankings/top-buyers [get]
func (h *LeaderboardHandler) topBuyers(c *gin.Context) {
	h.respond(c, models.WindowAllTime)
}

// @Summary Today's top buyers
// @Description Ranks buyers over paid purchases made since local midnight
// @Tags rankings
// @Produce json
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {array} models.BuyerSummary
// @Router /rankings/daily-buyers [get]
func (h *LeaderboardHandler) dailyBuyers(c *gin.Context) {
	h.respond(c, models.WindowToday)
}

func (h *LeaderboardHandler) respond(c *gin.Context, window models.Window) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	buyers, err := h.service.TopBuyers(c.Request.Context(), window, limit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buyers)
}
