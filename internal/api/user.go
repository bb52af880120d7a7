package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/meishi-app/backend/internal/service"
	"github.com/meishi-app/backend/internal/types"
)

// UserHandler exposes the profile persistence workflow over HTTP
type UserHandler struct {
	userService service.IUserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.IUserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.GET("/:id/card", h.GetUserCard)
		users.GET("/:id/edit", h.GetUserForEdit)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var form types.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.userService.CreateUserWithSkills(c.Request.Context(), &form); err != nil {
		h.writeError(c, err, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": form.UserID})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUserCard(c *gin.Context) {
	card, err := h.userService.GetUserCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to get user card")
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *UserHandler) GetUserForEdit(c *gin.Context) {
	view, err := h.userService.GetUserForEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to get user")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var form types.UserUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.userService.UpdateUserWithSkills(c.Request.Context(), c.Param("id"), &form); err != nil {
		h.writeError(c, err, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated successfully"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// writeError maps workflow errors onto HTTP statuses. Validation and
// duplicate-handle failures are client errors; everything else is a
// store failure.
func (h *UserHandler) writeError(c *gin.Context, err error, fallback string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
