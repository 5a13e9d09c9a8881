package dto

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse: response payload after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
}

// RegisterResponse: response payload after successful registration
type RegisterResponse struct {
	ID      int64  `json:"id"`
	Login   string `json:"login"`
	Message string `json:"message"`
}
