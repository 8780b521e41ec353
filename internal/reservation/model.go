package reservation

import (
	"context"
	"net/http"
	"time"

	"github.com/greenpark/parking-reservation-backend/internal/parking"
	"github.com/greenpark/parking-reservation-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "reservation not found")
	ErrParkingNotFound  = apperror.New(http.StatusNotFound, "parking not found")
	ErrEmailRequired    = apperror.New(http.StatusBadRequest, "email is required")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrDateConflict     = apperror.New(http.StatusBadRequest, "parking is not available for these dates")
	ErrEmailMismatch    = apperror.New(http.StatusForbidden, "not authorized")
	ErrAlreadyCancelled = apperror.New(http.StatusBadRequest, "reservation is already cancelled")
	ErrNotPending       = apperror.New(http.StatusBadRequest, "only pending reservations can be confirmed")
	ErrNotCancelled     = apperror.New(http.StatusBadRequest, "only cancelled reservations can be deleted")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Reservation is a customer's claim on a parking facility for a bounded interval.
//
// Customer contact and vehicle fields are stored inline and are not required
// to match any Client record. Duration and TotalPrice are stored exactly as
// the caller supplied them; they are never derived from the dates.
type Reservation struct {
	ID           string
	ClientID     *string
	Name         string
	Email        string
	Phone        string
	VehiclePlate string
	VehicleModel string
	ParkingID    string
	Parking      *parking.Parking // resolved facility; nil if it was deleted
	StartDate    time.Time
	EndDate      time.Time
	Duration     float64
	TotalPrice   float64
	Status       Status
	CreatedAt    time.Time
}

// Notifier delivers reservation lifecycle emails. Implementations must not be
// relied on for correctness: dispatch failures are logged and swallowed.
type Notifier interface {
	SendConfirmation(ctx context.Context, r *Reservation) error
	SendCancellation(ctx context.Context, r *Reservation) error
}
