package router

import (
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/pawhaven/backend/internal/handlers"
	"github.com/pawhaven/backend/internal/middleware"
	"github.com/pawhaven/backend/internal/models"
	"github.com/pawhaven/backend/internal/realtime"
	"github.com/pawhaven/backend/internal/repositories"
	"github.com/pawhaven/backend/internal/services"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, hub *realtime.Hub, fcmClient *messaging.Client, jwtSecret string) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.VerifiedUser{},
		&models.Admin{},
		&models.Activity{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	mgdb := mgClient.Database(mongoDatabase)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Real-time channel; authenticates via token query param
	e.GET("/ws", hub.Serve)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	verifiedRepo := repositories.NewPostgresVerifiedUserRepository(pgdb)
	adminRepo := repositories.NewPostgresAdminRepository(pgdb)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	petRepo := repositories.NewMongoPetRepository(mgdb)
	adoptionRepo := repositories.NewMongoAdoptionRepository(mgdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgdb)

	// --- Services ---
	directory := services.NewDirectory(userRepo, verifiedRepo, adminRepo)
	push := services.NewPushService(fcmClient)
	dispatcher := services.NewDispatcher(notificationRepo, directory, hub, push)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, verifiedRepo, adminRepo, directory, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))
	authHandler.RegisterProtectedRoutes(api)

	// --- Admin-only routes ---
	admin := e.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.AdminOnly())

	// Pet routes
	petHandler := handlers.NewPetHandler(petRepo)
	petHandler.RegisterPetRoutes(api)
	petHandler.RegisterAdminRoutes(admin)
	log.Println("Pet routes configured.")

	// Adoption lifecycle routes
	adoptionHandler := handlers.NewAdoptionHandler(adoptionRepo, petRepo, activityRepo, directory, dispatcher)
	adoptionHandler.RegisterAdoptionRoutes(api)
	adoptionHandler.RegisterAdminRoutes(admin)
	log.Println("Adoption routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Messaging routes
	messageHandler := handlers.NewMessageHandler(messageRepo, directory, hub)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Messaging routes configured.")

	// Activity log routes
	activityHandler := handlers.NewActivityHandler(activityRepo)
	activityHandler.RegisterActivityRoutes(admin)
	log.Println("Activity routes configured.")

	log.Println("All routes configured.")
}
