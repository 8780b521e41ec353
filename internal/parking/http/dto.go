package http

import (
	"time"

	"github.com/greenpark/parking-reservation-backend/internal/parking"
)

// ParkingResponse mirrors the wire format the admin and booking clients expect.
type ParkingResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	TotalSpots     int       `json:"totalSpots"`
	AvailableSpots int       `json:"availableSpots"`
	PricePerHour   float64   `json:"pricePerHour"`
	Image          *string   `json:"image"`
	IsActive       bool      `json:"isActive"`
	Description    string    `json:"description"`
	Services       []string  `json:"services"`
	OpeningHours   string    `json:"openingHours"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewParkingResponse(p *parking.Parking) ParkingResponse {
	services := p.Services
	if services == nil {
		services = []string{}
	}
	return ParkingResponse{
		ID:             p.ID,
		Name:           p.Name,
		Address:        p.Address,
		TotalSpots:     p.TotalSpots,
		AvailableSpots: p.AvailableSpots,
		PricePerHour:   p.PricePerHour,
		Image:          p.Image,
		IsActive:       p.IsActive,
		Description:    p.Description,
		Services:       services,
		OpeningHours:   p.OpeningHours,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
