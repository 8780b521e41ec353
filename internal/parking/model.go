package parking

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("parking not found")
	ErrMissingFields   = errors.New("name, address, totalSpots and pricePerHour are required")
	ErrInvalidSpots    = errors.New("totalSpots must be greater than 0")
	ErrNegativePrice   = errors.New("pricePerHour cannot be negative")
	ErrInvalidUpdate   = errors.New("invalid update")
	ErrImageTooLarge   = errors.New("image must not exceed 5 MB")
	ErrNotAnImage      = errors.New("file must be an image")
	ErrImageSaveFailed = errors.New("failed to store image")
)

// DefaultOpeningHours matches the registry's historical default.
const DefaultOpeningHours = "24h/24, 7j/7"

// Parking represents a parking facility with a fixed spot capacity and hourly price.
//
// AvailableSpots is a denormalized counter: it is only moved by admin edits to
// TotalSpots, never by reservation state changes.
type Parking struct {
	ID             string
	Name           string
	Address        string
	TotalSpots     int
	AvailableSpots int
	PricePerHour   float64
	Image          *string
	IsActive       bool
	Description    string
	Services       []string
	OpeningHours   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
