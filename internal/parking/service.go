package parking

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name         string
	Address      string
	TotalSpots   int
	PricePerHour float64
	Description  string
	Services     []string
	OpeningHours string
	IsActive     *bool
	Image        *string
}

// UpdateRequest carries the allow-listed mutable fields. Nil means "leave unchanged".
type UpdateRequest struct {
	Name         *string
	Address      *string
	TotalSpots   *int
	PricePerHour *float64
	Image        *string
	IsActive     *bool
	Description  *string
	Services     *[]string
	OpeningHours *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Parking, error)
	GetByID(ctx context.Context, id string) (*Parking, error)
	List(ctx context.Context) ([]*Parking, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Parking, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Parking, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Address) == "" ||
		req.TotalSpots == 0 || req.PricePerHour == 0 {
		return nil, ErrMissingFields
	}
	if req.TotalSpots < 0 {
		return nil, ErrInvalidSpots
	}
	if req.PricePerHour < 0 {
		return nil, ErrNegativePrice
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	openingHours := req.OpeningHours
	if strings.TrimSpace(openingHours) == "" {
		openingHours = DefaultOpeningHours
	}

	p := &Parking{
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		TotalSpots:   req.TotalSpots,
		// A new parking starts with every spot available.
		AvailableSpots: req.TotalSpots,
		PricePerHour:   req.PricePerHour,
		Image:          req.Image,
		IsActive:       isActive,
		Description:    req.Description,
		Services:       cleanServices(req.Services),
		OpeningHours:   openingHours,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Parking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Parking, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Parking, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrMissingFields
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			return nil, ErrMissingFields
		}
		p.Address = strings.TrimSpace(*req.Address)
	}
	if req.TotalSpots != nil {
		if *req.TotalSpots < 1 {
			return nil, ErrInvalidSpots
		}
		// Shift the available counter by the capacity delta, clamped to
		// [0, totalSpots]. Reservations never touch this counter.
		delta := *req.TotalSpots - p.TotalSpots
		p.TotalSpots = *req.TotalSpots
		p.AvailableSpots += delta
		if p.AvailableSpots > p.TotalSpots {
			p.AvailableSpots = p.TotalSpots
		}
		if p.AvailableSpots < 0 {
			p.AvailableSpots = 0
		}
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrNegativePrice
		}
		p.PricePerHour = *req.PricePerHour
	}
	if req.Image != nil {
		p.Image = req.Image
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Services != nil {
		p.Services = cleanServices(*req.Services)
	}
	if req.OpeningHours != nil {
		p.OpeningHours = *req.OpeningHours
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	// No cascade: reservations referencing this parking are left in place.
	return s.repo.Delete(ctx, id)
}

func cleanServices(services []string) []string {
	var out []string
	for _, svc := range services {
		if strings.TrimSpace(svc) != "" {
			out = append(out, strings.TrimSpace(svc))
		}
	}
	return out
}
