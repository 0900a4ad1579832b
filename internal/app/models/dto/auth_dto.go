package dto

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required" example:"ada@uni.edu"`
	Password  string `json:"password" binding:"required" example:"s3cretpass"`
	FirstName string `json:"firstName" binding:"required" example:"Ada"`
	LastName  string `json:"lastName" binding:"required" example:"Lovelace"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ada@uni.edu"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	TokenType    string `json:"tokenType" example:"Bearer"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}
