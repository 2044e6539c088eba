package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	Role     string `json:"role"`
	Code     string `json:"code"`
	FullName string `json:"full_name,omitempty"`
}
