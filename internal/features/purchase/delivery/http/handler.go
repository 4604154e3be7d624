package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/purchase/models"
	"raffle-tool-backend/internal/features/purchase/service"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(service service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	purchases := router.Group("/purchases")
	{
		purchases.POST("", h.create)
		purchases.POST("/:id/confirm", h.confirm)
		purchases.GET("/user/:id", h.listByUser)
	}

	raffles := router.Group("/raffles")
	{
		raffles.GET("/:id/tickets", h.soldTickets)
		raffles.GET("/:id/purchases", h.listByRaffle)
	}
}

// @Summary Buy tickets
// @Description Reserves a contiguous block of ticket numbers for the user and records the purchase
// @Tags purchases
// @Accept json
// @Produce json
// @Param input body models.PurchaseCreate true "Buyer, raffle and quantity"
// @Success 201 {object} models.Purchase
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Not enough tickets left"
// @Failure 422 {object} middleware.ErrorResponse "Raffle is not active"
// @Router /purchases [post]
func (h *PurchaseHandler) create(c *gin.Context) {
	var input models.PurchaseCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	purchase, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// @Summary Confirm payment
// @Description Settles a pending purchase so its tickets count as sold
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} models.Purchase
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Already paid"
// @Router /purchases/{id}/confirm [post]
func (h *PurchaseHandler) confirm(c *gin.Context) {
	purchase, err := h.service.ConfirmPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchase)
}

// @Summary List a user's purchases
// @Tags purchases
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.Purchase
// @Failure 404 {object} middleware.ErrorResponse
// @Router /purchases/user/{id} [get]
func (h *PurchaseHandler) listByUser(c *gin.Context) {
	purchases, err := h.service.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// @Summary List sold ticket numbers
// @Description Returns the sorted ticket numbers of all paid purchases of the raffle
// @Tags raffles
// @Produce json
// @Param id path string true "Raffle ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} middleware.ErrorResponse
// @Router /raffles/{id}/tickets [get]
func (h *PurchaseHandler) soldTickets(c *gin.Context) {
	tickets, err := h.service.SoldTickets(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets, "count": len(tickets)})
}

// @Summary List a raffle's purchases
// @Tags raffles
// @Produce json
// @Param id path string true "Raffle ID"
// @Success 200 {array} models.Purchase
// @Failure 404 {object} middleware.ErrorResponse
// @Router /raffles/{id}/purchases [get]
func (h *PurchaseHandler) listByRaffle(c *gin.Context) {
	purchases, err := h.service.ListByRaffle(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchases)
}
