package client

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("client not found")
	ErrEmailAlreadyUsed = errors.New("a client with this email already exists")
	ErrMissingFields    = errors.New("name, email and phone are required")
)

// Client is a customer profile kept by the admin, optionally linked to a
// parking facility and mirroring reservation details. The links are weak:
// reservations duplicate the contact fields inline and are not required to
// reference a client at all.
type Client struct {
	ID           string
	Name         string
	Email        string // stored lower-cased; unique
	Phone        string
	VehiclePlate *string
	VehicleModel *string
	ParkingID    *string
	Parking      *ParkingBrief
	StartDate    *time.Time
	EndDate      *time.Time
	Duration     *float64
	TotalPrice   *float64
	Reservations []ReservationBrief
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParkingBrief holds minimal facility info for client views.
type ParkingBrief struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ReservationBrief holds minimal reservation info for client views.
type ReservationBrief struct {
	ID         string    `json:"id"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
}
