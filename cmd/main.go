package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"vehicle-registry/db"
	"vehicle-registry/internal/auth"
	"vehicle-registry/internal/config"
	"vehicle-registry/internal/vehicle"
	"vehicle-registry/internal/web"
	"vehicle-registry/middleware"
)

// Global loggers for different output streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	var database *sql.DB
	var engine db.Engine

	if cfg.DatabaseType == config.Postgres {
		infoLogger.Println("Using PostgreSQL database")
		engine = db.EnginePostgres
		database, err = db.ConnectToPostgres(cfg.PostgresURL)
	} else {
		infoLogger.Println("Using SQLite database")
		engine = db.EngineSQLite
		database, err = db.ConnectToSQLite(cfg.SQLitePath)
	}
	if err != nil {
		errorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.InitializeSchema(database, engine); err != nil {
		errorLogger.Fatalf("Failed to initialize database schema: %v", err)
	}

	repoFactory := db.NewRepositoryFactory(database, engine)
	vehicleRepo := repoFactory.NewVehicleRepository()
	userRepo := repoFactory.NewUserRepository()

	// The default account must exist before the listener opens; running
	// without any valid account would lock everyone out permanently.
	if err := auth.EnsureDefaultUser(context.Background(), userRepo, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		errorLogger.Fatalf("Failed to bootstrap default account: %v", err)
	}

	sessionManager := auth.NewSessionManager(cfg.SessionSecret, cfg.Production)
	vehicleService := vehicle.NewVehicleService(vehicleRepo)
	vehicleHandlers := vehicle.NewVehicleHandlers(vehicleService)
	authHandlers := auth.NewAuthHandlers(userRepo, sessionManager, cfg)
	authMiddleware := middleware.NewMiddleware(sessionManager, cfg.SessionSecret)

	webHandler := web.NewWebHandler(vehicleHandlers, authHandlers, authMiddleware, cfg.PublicDir)
	router := webHandler.SetupRoutes()
	handler := middleware.LoggingMiddleware(middleware.SetupCORS()(router))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server, database)
}

func waitForShutdown(server *http.Server, database *sql.DB) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
	}

	if err := database.Close(); err != nil {
		errorLogger.Printf("Database close error: %v", err)
	}

	infoLogger.Println("Server stopped")
}
