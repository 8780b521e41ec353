package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/greenpark/parking-reservation-backend/internal/auth"
)

// Service defines business logic related to admin accounts.
type Service interface {
	Login(ctx context.Context, email, password string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

// NewService creates a new admin Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) Login(ctx context.Context, email, password string) (*Admin, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch admin by email: %w", err)
	}

	if !a.IsActive {
		return nil, ErrInactiveAdmin
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; do not fail login if the timestamp update fails.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, a.ID, now); err != nil {
		log.Printf("warning: failed to update last login for admin %s: %v", a.ID, err)
	}

	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
