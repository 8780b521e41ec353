package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/greenpark/parking-reservation-backend/internal/admin"
	adminHttp "github.com/greenpark/parking-reservation-backend/internal/admin/http"
	"github.com/greenpark/parking-reservation-backend/internal/auth"
	"github.com/greenpark/parking-reservation-backend/internal/client"
	clientHttp "github.com/greenpark/parking-reservation-backend/internal/client/http"
	"github.com/greenpark/parking-reservation-backend/internal/dashboard"
	dashboardHttp "github.com/greenpark/parking-reservation-backend/internal/dashboard/http"
	"github.com/greenpark/parking-reservation-backend/internal/parking"
	parkingHttp "github.com/greenpark/parking-reservation-backend/internal/parking/http"
	"github.com/greenpark/parking-reservation-backend/internal/pkg/storage"
	"github.com/greenpark/parking-reservation-backend/internal/reservation"
	reservationHttp "github.com/greenpark/parking-reservation-backend/internal/reservation/http"
)

// Config bundles the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	UploadDir    string

	AdminService       admin.Service
	ParkingService     parking.Service
	ReservationService reservation.Service
	ClientService      client.Service
	DashboardRepo      dashboard.Repository

	ImageStorage storage.Storage
	JWTManager   *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for all modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Uploaded parking images are served back as static files.
	r.Static("/uploads", cfg.UploadDir)

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated caller is an admin.
	adminMiddleware := RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	adminHandler := adminHttp.NewHandler(cfg.AdminService, cfg.JWTManager)
	parkingHandler := parkingHttp.NewHandler(cfg.ParkingService, cfg.ImageStorage)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	clientHandler := clientHttp.NewHandler(cfg.ClientService)
	dashboardHandler := dashboardHttp.NewHandler(cfg.DashboardRepo)

	// Register API routes under /api
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "API is running",
			})
		})

		adminHttp.RegisterRoutes(api, adminHandler, authMiddleware, adminMiddleware)
		parkingHttp.RegisterRoutes(api, parkingHandler, authMiddleware, adminMiddleware)
		reservationHttp.RegisterRoutes(api, reservationHandler, authMiddleware, adminMiddleware)
		clientHttp.RegisterRoutes(api, clientHandler, authMiddleware, adminMiddleware)
		dashboardHttp.RegisterRoutes(api, dashboardHandler)
	}

	return r
}

// splitOrigins parses the comma-separated PROD_ORIGINS value.
func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
