package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/raffle/models"
	"raffle-tool-backend/internal/features/raffle/service"
)

type RaffleHandler struct {
	service service.RaffleService
}

func NewRaffleHandler(service service.RaffleService) *RaffleHandler {
	return &RaffleHandler{service: service}
}

// RegisterRoutes mounts the raffle endpoints. Mutating routes go through the
// admin guard.
func (h *RaffleHandler) RegisterRoutes(router *gin.RouterGroup, adminGuard gin.HandlerFunc) {
	raffles := router.Group("/raffles")
	{
		raffles.GET("", h.list)
		raffles.GET("/:id", h.getByID)
		raffles.POST("", adminGuard, h.create)
		raffles.PUT("/:id", adminGuard, h.update)
	}
}

// @Summary Create a raffle
// @Description Creates a raffle with normalized bonus tiers and zero sold tickets
// @Tags raffles
// @Accept json
// @Produce json
// @Security AdminToken
// @Param input body models.RaffleCreate true "Raffle parameters"
// @Success 201 {object} models.Raffle
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /raffles [post]
func (h *RaffleHandler) create(c *gin.Context) {
	var input models.RaffleCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	raffle, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, raffle)
}

// @Summary Update a raffle
// @Description Partially updates raffle fields; total tickets are immutable
// @Tags raffles
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "Raffle ID"
// @Param input body models.RaffleUpdate true "Fields to update"
// @Success 200 {object} models.Raffle
// @Failure 404 {object} middleware.ErrorResponse
// @Router /raffles/{id} [put]
func (h *RaffleHandler) update(c *gin.Context) {
	var input models.RaffleUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	raffle, err := h.service.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, raffle)
}

// @Summary List raffles
// @Description Lists raffles, newest first; pass status=active to filter
// @Tags raffles
// @Produce json
// @Param status query string false "Filter by status" Enums(active)
// @Success 200 {array} models.Raffle
// @Router /raffles [get]
func (h *RaffleHandler) list(c *gin.Context) {
	raffles, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, raffles)
}

// @Summary Get a raffle
// @Tags raffles
// @Produce json
// @Param id path string true "Raffle ID"
// @Success 200 {object} models.Raffle
// @Failure 404 {object} middleware.ErrorResponse
// @Router /raffles/{id} [get]
func (h *RaffleHandler) getByID(c *gin.Context) {
	raffle, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, raffle)
}
