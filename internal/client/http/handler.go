package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenpark/parking-reservation-backend/internal/client"
)

type Handler struct {
	service client.Service
}

func NewHandler(service client.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateClientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), client.CreateRequest{
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		VehiclePlate: body.VehiclePlate,
		VehicleModel: body.VehicleModel,
		ParkingID:    body.ParkingID,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Duration:     body.Duration,
		TotalPrice:   body.TotalPrice,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "client created",
		"client":  NewClientResponse(created),
	})
}

func (h *Handler) List(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}

	items := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		items[i] = NewClientResponse(cl)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "clients retrieved",
		"clients": items,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "client retrieved",
		"client":  NewClientResponse(cl),
	})
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateClientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, client.UpdateRequest{
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		VehiclePlate: body.VehiclePlate,
		VehicleModel: body.VehicleModel,
		ParkingID:    body.ParkingID,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Duration:     body.Duration,
		TotalPrice:   body.TotalPrice,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "client updated",
		"client":  NewClientResponse(updated),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	removed, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("client and %d linked reservations deleted", removed),
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, client.ErrEmailAlreadyUsed), errors.Is(err, client.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save client"})
	}
}
