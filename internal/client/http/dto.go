package http

import (
	"time"

	"github.com/greenpark/parking-reservation-backend/internal/client"
)

type CreateClientBody struct {
	Name         string     `json:"name" binding:"required"`
	Email        string     `json:"email" binding:"required,email"`
	Phone        string     `json:"phone" binding:"required"`
	VehiclePlate *string    `json:"vehiclePlate"`
	VehicleModel *string    `json:"vehicleModel"`
	ParkingID    *string    `json:"parkingId" binding:"omitempty,uuid"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Duration     *float64   `json:"duration"`
	TotalPrice   *float64   `json:"totalPrice"`
}

type UpdateClientBody struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email" binding:"omitempty,email"`
	Phone        *string    `json:"phone"`
	VehiclePlate *string    `json:"vehiclePlate"`
	VehicleModel *string    `json:"vehicleModel"`
	ParkingID    *string    `json:"parkingId" binding:"omitempty,uuid"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Duration     *float64   `json:"duration"`
	TotalPrice   *float64   `json:"totalPrice"`
}

type ClientResponse struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Email        string                    `json:"email"`
	Phone        string                    `json:"phone"`
	VehiclePlate *string                   `json:"vehiclePlate"`
	VehicleModel *string                   `json:"vehicleModel"`
	Parking      *client.ParkingBrief      `json:"parking"`
	StartDate    *time.Time                `json:"startDate"`
	EndDate      *time.Time                `json:"endDate"`
	Duration     *float64                  `json:"duration"`
	TotalPrice   *float64                  `json:"totalPrice"`
	Reservations []client.ReservationBrief `json:"reservations"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

func NewClientResponse(c *client.Client) ClientResponse {
	reservations := c.Reservations
	if reservations == nil {
		reservations = []client.ReservationBrief{}
	}
	return ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		VehiclePlate: c.VehiclePlate,
		VehicleModel: c.VehicleModel,
		Parking:      c.Parking,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Duration:     c.Duration,
		TotalPrice:   c.TotalPrice,
		Reservations: reservations,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
