package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/backend/internal/realtime"
	"github.com/pawhaven/backend/internal/router"
	"github.com/pawhaven/backend/pkg/config"
	"github.com/pawhaven/backend/pkg/firebase"
	"github.com/pawhaven/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase; push delivery is optional
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Real-time hub for per-identity channels
	hub := realtime.NewHub(cfg.JWTSecret)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg.MongoDatabase, hub, firebaseApp.Messaging, cfg.JWTSecret)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
