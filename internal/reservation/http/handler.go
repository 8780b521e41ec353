package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenpark/parking-reservation-backend/internal/pkg/response"
	"github.com/greenpark/parking-reservation-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

// Create handles the public reservation form. The reservation starts out
// pending until an admin confirms or rejects it.
func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "details": err.Error()})
		return
	}

	req := reservation.CreateRequest{
		ParkingID:    body.ParkingID,
		Name:         strings.TrimSpace(body.FirstName) + " " + strings.TrimSpace(body.LastName),
		Email:        body.Email,
		Phone:        body.Phone,
		VehiclePlate: body.VehiclePlate,
		VehicleModel: body.VehicleModel,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Duration:     body.Duration,
		TotalPrice:   body.Total,
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "reservation created",
		"reservation": NewReservationResponse(r),
	})
}

// ListByEmail lists a customer's reservations, newest first.
func (h *Handler) ListByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	reservations, err := h.service.ListByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "reservations retrieved",
		"reservations": newReservationList(reservations),
	})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "reservation retrieved",
		"reservation": NewReservationResponse(r),
	})
}

// Cancel is the customer-initiated cancellation; the body email must match
// the one stored on the reservation.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CancelReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	r, err := h.service.Cancel(c.Request.Context(), id, body.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "reservation cancelled",
		"reservation": NewReservationResponse(r),
	})
}

func (h *Handler) ListPending(c *gin.Context) {
	reservations, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "pending reservations retrieved",
		"reservations": newReservationList(reservations),
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	reservations, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "reservations retrieved",
		"reservations": newReservationList(reservations),
	})
}

func (h *Handler) Confirm(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "reservation confirmed",
		"reservation": NewReservationResponse(r),
	})
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "reservation rejected",
		"reservation": NewReservationResponse(r),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "reservation deleted")
}
