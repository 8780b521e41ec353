package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenpark/parking-reservation-backend/internal/dashboard"
)

type Handler struct {
	repo dashboard.Repository
}

func NewHandler(repo dashboard.Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, NewStatsResponse(stats))
}
