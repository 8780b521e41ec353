package reservation

import (
	"context"
	"log"
	"strings"
	"time"
)

type CreateRequest struct {
	ParkingID    string
	Name         string
	Email        string
	Phone        string
	VehiclePlate string
	VehicleModel string
	StartDate    time.Time
	EndDate      time.Time
	Duration     float64
	TotalPrice   float64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	ListByEmail(ctx context.Context, email string) ([]*Reservation, error)
	ListAll(ctx context.Context) ([]*Reservation, error)
	ListPending(ctx context.Context) ([]*Reservation, error)

	// Cancel is the customer-initiated transition; the requester must present
	// the email stored on the reservation.
	Cancel(ctx context.Context, id, email string) (*Reservation, error)

	// Confirm and Reject are admin transitions. Both attempt a notification
	// send after committing the status change; a failed send never fails the
	// operation.
	Confirm(ctx context.Context, id string) (*Reservation, error)
	Reject(ctx context.Context, id string) (*Reservation, error)

	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	res := &Reservation{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		VehiclePlate: strings.TrimSpace(req.VehiclePlate),
		VehicleModel: strings.TrimSpace(req.VehicleModel),
		ParkingID:    req.ParkingID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		// Stored as supplied; never recomputed from the dates.
		Duration:   req.Duration,
		TotalPrice: req.TotalPrice,
		Status:     StatusPending,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	// Re-read so the response carries the resolved facility.
	return s.repo.GetByID(ctx, res.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByEmail(ctx context.Context, email string) ([]*Reservation, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	return s.repo.ListByEmail(ctx, email)
}

func (s *service) ListAll(ctx context.Context) ([]*Reservation, error) {
	return s.repo.List(ctx)
}

func (s *service) ListPending(ctx context.Context) ([]*Reservation, error) {
	return s.repo.ListByStatus(ctx, StatusPending)
}

func (s *service) Cancel(ctx context.Context, id, email string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.Email != email {
		return nil, ErrEmailMismatch
	}
	if res.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	res.Status = StatusCancelled

	return res, nil
}

func (s *service) Confirm(ctx context.Context, id string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.Status != StatusPending {
		return nil, ErrNotPending
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusConfirmed); err != nil {
		return nil, err
	}
	res.Status = StatusConfirmed

	if err := s.notifier.SendConfirmation(ctx, res); err != nil {
		log.Printf("failed to send confirmation email for reservation %s: %v", res.ID, err)
	}

	return res, nil
}

func (s *service) Reject(ctx context.Context, id string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A confirmed reservation can still be rejected; only an already
	// cancelled one cannot. Rejection shares the cancelled terminal status.
	if res.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	res.Status = StatusCancelled

	if err := s.notifier.SendCancellation(ctx, res); err != nil {
		log.Printf("failed to send cancellation email for reservation %s: %v", res.ID, err)
	}

	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if res.Status != StatusCancelled {
		return ErrNotCancelled
	}

	return s.repo.Delete(ctx, id)
}
