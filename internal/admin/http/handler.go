package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenpark/parking-reservation-backend/internal/admin"
	"github.com/greenpark/parking-reservation-backend/internal/auth"
)

type Handler struct {
	service    admin.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service admin.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// Login authenticates an admin using email and password.
// On success, it returns a JWT access token and the admin profile.
func (h *Handler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	a, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidCredentials),
			errors.Is(err, admin.ErrNotFound),
			errors.Is(err, admin.ErrInactiveAdmin):
			// Do not reveal which condition failed
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(a.ID, a.Email, auth.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		Admin:       NewAdminResponse(a),
	})
}

// Me retrieves the profile of the currently authenticated admin.
func (h *Handler) Me(c *gin.Context) {
	adminID := auth.GetUserID(c)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": NewAdminResponse(a)})
}
