package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenpark/parking-reservation-backend/internal/admin"
	"github.com/greenpark/parking-reservation-backend/internal/api"
	"github.com/greenpark/parking-reservation-backend/internal/auth"
	"github.com/greenpark/parking-reservation-backend/internal/client"
	"github.com/greenpark/parking-reservation-backend/internal/dashboard"
	"github.com/greenpark/parking-reservation-backend/internal/notify"
	"github.com/greenpark/parking-reservation-backend/internal/parking"
	"github.com/greenpark/parking-reservation-backend/internal/pkg/storage"
	"github.com/greenpark/parking-reservation-backend/internal/reservation"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	imageStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init upload storage: %w", err)
	}

	// Reservation emails fall back to log-only mode when SendGrid is not configured.
	var notifier reservation.Notifier
	if cfg.SendGridAPIKey != "" {
		notifier = notify.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName)
	} else {
		notifier = notify.NewLogNotifier()
	}

	// Admin Module
	adminRepo := admin.NewPgxRepository(cfg.DBPool)
	adminService := admin.NewService(adminRepo, passwordHasher)

	// Parking Module
	parkingRepo := parking.NewPgxRepository(cfg.DBPool)
	parkingService := parking.NewService(parkingRepo)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, notifier)

	// Client Module
	clientRepo := client.NewPgxRepository(cfg.DBPool)
	clientService := client.NewService(clientRepo)

	// Dashboard Module
	dashboardRepo := dashboard.NewPgxRepository(cfg.DBPool)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UploadDir:          imageStorage.BasePath(),
		AdminService:       adminService,
		ParkingService:     parkingService,
		ReservationService: reservationService,
		ClientService:      clientService,
		DashboardRepo:      dashboardRepo,
		ImageStorage:       imageStorage,
		JWTManager:         jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
