package dto

import "gamehub/internal/api/models"

// SubmitReviewDTO for creating a review
type SubmitReviewDTO struct {
	Rank       int    `json:"rank" binding:"required,min=1,max=10"`
	ReviewText string `json:"review_text"`
}

// UpdateReviewDTO for editing one's own review; both fields optional
type UpdateReviewDTO struct {
	Rank       *int    `json:"rank" binding:"omitempty,min=1,max=10"`
	ReviewText *string `json:"review_text"`
}

// ReviewStatusDTO for moderation decisions
type ReviewStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

// ReviewResponse wraps a review with a human-readable message
type ReviewResponse struct {
	Message string         `json:"message"`
	Review  *models.Review `json:"review"`
}
