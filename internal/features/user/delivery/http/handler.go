package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/middleware"
	"raffle-tool-backend/internal/features/user/models"
	"raffle-tool-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.register)
		users.GET("/:id", h.getByID)
	}
}

// @Summary Register or look up a user
// @Description Returns the existing user for the phone, or registers a new one. Idempotent by phone.
// @Tags users
// @Accept json
// @Produce json
// @Param input body models.UserCreate true "Phone and optional name"
// @Success 200 {object} models.User
// @Failure 400 {object} middleware.ErrorResponse
// @Router /users [post]
func (h *UserHandler) register(c *gin.Context) {
	var input models.UserCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	user, err := h.service.GetOrCreateByPhone(c.Request.Context(), &input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) getByID(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
