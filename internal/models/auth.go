package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest holds payload for creating a new account.
type RegisterRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=50"`
	Password    string   `json:"password" validate:"required,min=6"`
	FullName    string   `json:"fullName" validate:"required"`
	Role        UserRole `json:"role" validate:"required,oneof=CO JCO USER"`
	ArmyNo      string   `json:"armyNo"`
	Rank        string   `json:"rank"`
	BattalionID string   `json:"battalion"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	User      UserInfo  `json:"user"`
	IssuedAt  time.Time `json:"issued_at"`
}

// ChangePasswordRequest payload for updating password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"fullName"`
	Role        UserRole `json:"role"`
	ArmyNo      *string  `json:"armyNo,omitempty"`
	BattalionID *string  `json:"battalion,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	FullName string   `json:"fullName"`
	jwt.RegisteredClaims
}

// AuthContext is attached to each request after the authentication gate
// verifies the token and loads the user. Downstream handlers use it for
// authorization decisions and query scoping.
type AuthContext struct {
	UserID      string
	Username    string
	Role        UserRole
	ArmyNo      *string
	BattalionID *string
}
