package client

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	Name         string
	Email        string
	Phone        string
	VehiclePlate *string
	VehicleModel *string
	ParkingID    *string
	StartDate    *time.Time
	EndDate      *time.Time
	Duration     *float64
	TotalPrice   *float64
}

// UpdateRequest carries optional replacements; nil means "leave unchanged".
type UpdateRequest struct {
	Name         *string
	Email        *string
	Phone        *string
	VehiclePlate *string
	VehicleModel *string
	ParkingID    *string
	StartDate    *time.Time
	EndDate      *time.Time
	Duration     *float64
	TotalPrice   *float64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Client, error)

	// Delete removes the client and cascades over its linked reservations.
	Delete(ctx context.Context, id string) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	email := normalizeEmail(req.Email)
	if strings.TrimSpace(req.Name) == "" || email == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, ErrMissingFields
	}

	c := &Client{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		VehiclePlate: req.VehiclePlate,
		VehicleModel: req.VehicleModel,
		ParkingID:    req.ParkingID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Duration:     req.Duration,
		TotalPrice:   req.TotalPrice,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		// The unique index catches collisions with another client's email.
		if email := normalizeEmail(*req.Email); email != "" {
			c.Email = email
		}
	}
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.VehiclePlate != nil {
		c.VehiclePlate = req.VehiclePlate
	}
	if req.VehicleModel != nil {
		c.VehicleModel = req.VehicleModel
	}
	if req.ParkingID != nil {
		c.ParkingID = req.ParkingID
	}
	if req.StartDate != nil {
		c.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = req.EndDate
	}
	if req.Duration != nil {
		c.Duration = req.Duration
	}
	if req.TotalPrice != nil {
		c.TotalPrice = req.TotalPrice
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteWithReservations(ctx, id)
}

// normalizeEmail lower-cases and trims an email so the uniqueness check is
// case-insensitive end to end.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
