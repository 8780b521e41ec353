package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenpark/parking-reservation-backend/internal/parking"
	"github.com/greenpark/parking-reservation-backend/internal/pkg/storage"
)

// allowedUpdateFields is the explicit allow-list of mutable form fields on PATCH.
var allowedUpdateFields = map[string]bool{
	"name":         true,
	"address":      true,
	"totalSpots":   true,
	"pricePerHour": true,
	"isActive":     true,
	"description":  true,
	"services":     true,
	"openingHours": true,
}

type Handler struct {
	service parking.Service
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewHandler(service parking.Service, store storage.Storage) *Handler {
	return &Handler{
		service: service,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (h *Handler) List(c *gin.Context) {
	parkings, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list parkings"})
		return
	}

	items := make([]ParkingResponse, len(parkings))
	for i, p := range parkings {
		items[i] = NewParkingResponse(p)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, parking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get parking"})
		return
	}

	c.JSON(http.StatusOK, NewParkingResponse(p))
}

// Create accepts a multipart form with an optional image part.
func (h *Handler) Create(c *gin.Context) {
	totalSpots, _ := strconv.Atoi(c.PostForm("totalSpots"))
	pricePerHour, _ := strconv.ParseFloat(c.PostForm("pricePerHour"), 64)

	req := parking.CreateRequest{
		Name:         c.PostForm("name"),
		Address:      c.PostForm("address"),
		TotalSpots:   totalSpots,
		PricePerHour: pricePerHour,
		Description:  c.PostForm("description"),
		Services:     c.PostFormArray("services"),
		OpeningHours: c.PostForm("openingHours"),
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isActive value"})
			return
		}
		req.IsActive = &active
	}

	image, err := h.saveImageUpload(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	req.Image = image

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "parking created",
		"parking": NewParkingResponse(p),
	})
}

// Update accepts a multipart form carrying any subset of the allow-listed fields.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := c.Request.ParseMultipartForm(maxImageBytes); err != nil && !strings.Contains(err.Error(), "not multipart") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}
	for field := range c.Request.PostForm {
		if !allowedUpdateFields[field] {
			h.writeError(c, parking.ErrInvalidUpdate)
			return
		}
	}

	var req parking.UpdateRequest
	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("address"); ok {
		req.Address = &v
	}
	if v, ok := c.GetPostForm("totalSpots"); ok {
		spots, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid totalSpots value"})
			return
		}
		req.TotalSpots = &spots
	}
	if v, ok := c.GetPostForm("pricePerHour"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pricePerHour value"})
			return
		}
		req.PricePerHour = &price
	}
	if v, ok := c.GetPostForm("isActive"); ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isActive value"})
			return
		}
		req.IsActive = &active
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	if _, ok := c.GetPostForm("services"); ok {
		services := c.PostFormArray("services")
		req.Services = &services
	}
	if v, ok := c.GetPostForm("openingHours"); ok {
		req.OpeningHours = &v
	}

	image, err := h.saveImageUpload(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if image != nil {
		req.Image = image
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "parking updated",
		"parking": NewParkingResponse(p),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err == nil && p.Image != nil {
		// Best effort; a leftover file never blocks the delete.
		if err := h.storage.Delete(c.Request.Context(), *p.Image); err != nil {
			log.Printf("warning: failed to remove image for parking %s: %v", id, err)
		}
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, parking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "parking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete parking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "parking deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, parking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, parking.ErrMissingFields),
		errors.Is(err, parking.ErrInvalidSpots),
		errors.Is(err, parking.ErrNegativePrice),
		errors.Is(err, parking.ErrInvalidUpdate),
		errors.Is(err, parking.ErrImageTooLarge),
		errors.Is(err, parking.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save parking"})
	}
}
