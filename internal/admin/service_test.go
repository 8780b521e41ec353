package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpark/parking-reservation-backend/internal/auth"
)

type fakeRepository struct {
	admins     map[string]*Admin // keyed by email
	lastLogins map[string]time.Time
}

func newFakeRepository(admins ...*Admin) *fakeRepository {
	r := &fakeRepository{
		admins:     map[string]*Admin{},
		lastLogins: map[string]time.Time{},
	}
	for _, a := range admins {
		r.admins[a.Email] = a
	}
	return r
}

func (r *fakeRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	a, ok := r.admins[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	for _, a := range r.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.lastLogins[id] = t
	return nil
}

func testAdmin(t *testing.T, hasher auth.PasswordHasher, password string, active bool) *Admin {
	t.Helper()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	return &Admin{
		ID:           "admin-1",
		Email:        "admin@example.com",
		PasswordHash: hash,
		IsActive:     active,
	}
}

func TestLogin(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	repo := newFakeRepository(testAdmin(t, hasher, "correct horse", true))
	svc := NewService(repo, hasher)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		a, err := svc.Login(ctx, "admin@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "admin-1", a.ID)
		assert.Contains(t, repo.lastLogins, "admin-1")
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		_, err := svc.Login(ctx, "  ADMIN@Example.com ", "correct horse")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank input", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginInactiveAdmin(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	repo := newFakeRepository(testAdmin(t, hasher, "correct horse", false))
	svc := NewService(repo, hasher)

	_, err := svc.Login(context.Background(), "admin@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInactiveAdmin)
}
