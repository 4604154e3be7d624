package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/winner/models"
	"raffle-tool-backend/internal/features/winner/service"
)

type WinnerHandler struct {
	service service.WinnerService
}

func NewWinnerHandler(service service.WinnerService) *WinnerHandler {
	return &WinnerHandler{service: service}
}

func (h *WinnerHandler) RegisterRoutes(router *gin.RouterGroup, adminGuard gin.HandlerFunc) {
	winners := router.Group("/winners")
	{
		winners.GET("", h.list)
		winners.POST("", adminGuard, h.record)
	}
}

// @Summary Publish a draw result
// @Tags winners
// @Accept json
// @Produce json
// @Security AdminToken
// @Param input body models.WinnerCreate true "Draw result"
// @Success 201 {object} models.Winner
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /winners [post]
func (h *WinnerHandler) record(c *gin.Context) {
	var input models.WinnerCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	winner, err := h.service.Record(c.Request.Context(), &input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, winner)
}

// @Summary List winners
// @Description Lists published draw results, newest first
// @Tags winners
// @Produce json
// @Success 200 {array} models.Winner
// @Router /winners [get]
func (h *WinnerHandler) list(c *gin.Context) {
	winners, err := h.service.List(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, winners)
}
