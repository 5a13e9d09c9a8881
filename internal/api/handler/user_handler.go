package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamehub/internal/api/dto"
	"gamehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers user administration routes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("", authRequired, adminOnly, h.List)
		users.PUT("/:id", authRequired, adminOnly, h.UpdateStatus)
		users.DELETE("/:id", authRequired, adminOnly, h.Delete)
		users.GET("/:id/profile", authRequired, h.GetProfile)
	}
}

// List returns all users without password hashes
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateStatus blocks or unblocks a user
// PUT /api/users/:id
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var req dto.UpdateUserStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateStatus(userID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUserStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user status"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user status updated"})
}

// Delete removes a user and cascades deletion of their reviews
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// GetProfile returns a user's login and status
// GET /api/users/:id/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
