package dto

// UpdateUserStatusDTO for blocking/unblocking a user
type UpdateUserStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

// UserProfileResponse: login and status only, visible to any
// authenticated user
type UserProfileResponse struct {
	Login  string `json:"login"`
	Status string `json:"status"`
}
