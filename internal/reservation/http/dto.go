package http

import (
	"time"

	parkingHttp "github.com/greenpark/parking-reservation-backend/internal/parking/http"
	"github.com/greenpark/parking-reservation-backend/internal/reservation"
)

// CreateReservationBody is the public reservation form. Every field is
// required; duration and total are taken at face value.
type CreateReservationBody struct {
	ParkingID    string    `json:"parkingId" binding:"required,uuid"`
	FirstName    string    `json:"firstName" binding:"required"`
	LastName     string    `json:"lastName" binding:"required"`
	Email        string    `json:"email" binding:"required,email"`
	Phone        string    `json:"phone" binding:"required"`
	VehiclePlate string    `json:"vehiclePlate" binding:"required"`
	VehicleModel string    `json:"vehicleModel" binding:"required"`
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
	Duration     float64   `json:"duration" binding:"required"`
	Total        float64   `json:"total" binding:"required"`
}

type CancelReservationBody struct {
	Email string `json:"email" binding:"required,email"`
}

type ReservationResponse struct {
	ID           string                       `json:"id"`
	ClientID     *string                      `json:"client,omitempty"`
	Name         string                       `json:"name"`
	Email        string                       `json:"email"`
	Phone        string                       `json:"phone"`
	VehiclePlate string                       `json:"vehiclePlate"`
	VehicleModel string                       `json:"vehicleModel"`
	Parking      *parkingHttp.ParkingResponse `json:"parking"`
	StartDate    time.Time                    `json:"startDate"`
	EndDate      time.Time                    `json:"endDate"`
	Duration     float64                      `json:"duration"`
	TotalPrice   float64                      `json:"totalPrice"`
	Status       string                       `json:"status"`
	CreatedAt    time.Time                    `json:"createdAt"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:           r.ID,
		ClientID:     r.ClientID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		VehiclePlate: r.VehiclePlate,
		VehicleModel: r.VehicleModel,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Duration:     r.Duration,
		TotalPrice:   r.TotalPrice,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
	if r.Parking != nil {
		p := parkingHttp.NewParkingResponse(r.Parking)
		resp.Parking = &p
	}
	return resp
}

func newReservationList(reservations []*reservation.Reservation) []ReservationResponse {
	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewReservationResponse(r)
	}
	return items
}
