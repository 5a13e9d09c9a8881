package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gamehub/internal/api/dto"
	"gamehub/internal/api/middleware"
	"gamehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// RegisterRoutes registers review-related routes
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	reviews := router.Group("/reviews")
	{
		// Per-game review routes
		reviews.POST("/game/:id", authRequired, h.Submit)
		reviews.GET("/game/:id", h.ListByGame) // public, approved only
		reviews.GET("/game/:id/my", authRequired, h.GetOwn)
		reviews.PUT("/game/:id/my", authRequired, h.UpdateOwn)

		// Moderation routes
		reviews.GET("", authRequired, adminOnly, h.ListPending)
		reviews.PUT("/:id/status", authRequired, adminOnly, h.SetStatus)
		reviews.DELETE("/:id", authRequired, adminOnly, h.Delete)
	}
}

// Submit creates a pending review for a game
// POST /api/reviews/game/:id
func (h *ReviewHandler) Submit(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.SubmitReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Submit(userID, gameID, req.Rank, req.ReviewText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrGameNotFound), errors.Is(err, service.ErrRankOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit review"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ReviewResponse{
		Message: "review submitted and awaiting moderation",
		Review:  review,
	})
}

// ListByGame returns a game's approved reviews
// GET /api/reviews/game/:id
func (h *ReviewHandler) ListByGame(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	reviews, err := h.reviewService.ListApprovedByGame(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetOwn returns the caller's review for a game
// GET /api/reviews/game/:id/my
func (h *ReviewHandler) GetOwn(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	review, err := h.reviewService.GetOwn(userID, gameID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "you have not reviewed this game yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load review"})
		return
	}
	c.JSON(http.StatusOK, review)
}

// UpdateOwn edits the caller's review; the review goes back to moderation
// PUT /api/reviews/game/:id/my
func (h *ReviewHandler) UpdateOwn(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.UpdateOwn(userID, gameID, req.Rank, req.ReviewText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRankOutOfRange), errors.Is(err, service.ErrNothingToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ReviewResponse{
		Message: "review updated and sent back to moderation",
		Review:  review,
	})
}

// ListPending returns the moderation queue
// GET /api/reviews
func (h *ReviewHandler) ListPending(c *gin.Context) {
	reviews, err := h.reviewService.ListPending()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pending reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// SetStatus applies a moderation decision
// PUT /api/reviews/:id/status
func (h *ReviewHandler) SetStatus(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return
	}

	var req dto.ReviewStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := h.reviewService.SetStatus(reviewID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReviewStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review status"})
		}
		return
	}

	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("review %d already has status '%s'", reviewID, req.Status)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("review %d status updated to '%s'", reviewID, req.Status)})
}

// Delete removes a review
// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return
	}

	if err := h.reviewService.Remove(reviewID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("review %d deleted", reviewID)})
}
