package dto

import "gamehub/internal/api/models"

// GameListResponse is the paginated catalog page shape.
type GameListResponse struct {
	Games       []models.GameRow `json:"games"`
	TotalGames  int64            `json:"totalGames"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

// CreateGameDTO for adding a game to the catalog. Rating is not accepted;
// it is derived from approved reviews.
type CreateGameDTO struct {
	Name        string `json:"name" binding:"required"`
	Genre       string `json:"genre"`
	Year        int    `json:"year" binding:"required"`
	Platforms   string `json:"platforms" binding:"required"`
	PublisherID *int64 `json:"publisher_id"`
	DeveloperID *int64 `json:"developer_id"`
	Description string `json:"description"`
}

// UpdateGameDTO for partial game edits
type UpdateGameDTO struct {
	Name        *string `json:"name"`
	Genre       *string `json:"genre"`
	Year        *int    `json:"year"`
	Platforms   *string `json:"platforms"`
	PublisherID *int64  `json:"publisher_id"`
	DeveloperID *int64  `json:"developer_id"`
	Description *string `json:"description"`
}

// CreateNameDTO for publisher/developer creation
type CreateNameDTO struct {
	Name string `json:"name" binding:"required"`
}
