package http

import (
	"time"

	"github.com/greenpark/parking-reservation-backend/internal/admin"
)

// LoginBody defines the payload for admin login.
type LoginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminResponse is the shape of admin data returned in API responses.
type AdminResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"displayName"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// LoginResponse returns the token and admin profile.
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	Admin       AdminResponse `json:"admin"`
}

// NewAdminResponse converts domain admin.Admin to AdminResponse used by the API.
func NewAdminResponse(a *admin.Admin) AdminResponse {
	var lastLoginAt *time.Time
	if a.LastLoginAt != nil {
		ll := *a.LastLoginAt
		lastLoginAt = &ll
	}

	return AdminResponse{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		LastLoginAt: lastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}
