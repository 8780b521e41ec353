package admin

import (
	"errors"
	"time"
)

// Service errors used to communicate business logic failures.
var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAdmin      = errors.New("admin account is disabled")
)

// Admin is a back-office account allowed to manage facilities, clients and
// the reservation queue.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  *string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
