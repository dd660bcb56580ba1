package handler

import (
	"time"

	"github.com/jobseeker/backend/internal/application/identity"
)

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,max=30"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the token refresh request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the logout request body. The refresh token is
// optional; when present it is revoked together with the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// SessionResponse is the response shape for register and login: the
// token pair and the full profile in one payload.
type SessionResponse struct {
	Token TokenResponse      `json:"token"`
	User  *identity.UserInfo `json:"user"`
}

// RefreshTokenResponse represents the token refresh response
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

func newSessionResponse(result *identity.SessionResult) SessionResponse {
	return SessionResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: result.User,
	}
}
