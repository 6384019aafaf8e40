package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginResponse returns the issued token and admin info.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	Admin     Admin     `json:"admin"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// JWTClaims represents the JWT payload for admin tokens.
type JWTClaims struct {
	AdminID string `json:"id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// LoginRequest holds admin credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest payload for updating the admin password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// SeedAdminRequest describes the admin account created by the seed command.
type SeedAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}
