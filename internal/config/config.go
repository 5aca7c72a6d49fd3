package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	Postgres DatabaseType = "postgres"
	SQLite   DatabaseType = "sqlite"
)

type Config struct {
	Port          string
	SessionSecret []byte
	DatabaseType  DatabaseType
	// PostgreSQL config
	PostgresURL string
	// SQLite config
	SQLitePath string
	// Common configs
	DatabaseName  string
	AdminUsername string
	AdminPassword string
	PublicDir     string
	Production    bool
}

func LoadConfig() (*Config, error) {
	// Optional .env file; real environment wins either way
	_ = godotenv.Load()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "vehicles"
	}

	adminUsername := os.Getenv("DEFAULT_ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}
	adminPassword := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "password"
	}

	publicDir := os.Getenv("PUBLIC_DIR")
	if publicDir == "" {
		publicDir = "public"
	}

	config := &Config{
		Port:          port,
		SessionSecret: []byte(sessionSecret),
		DatabaseName:  databaseName,
		AdminUsername: adminUsername,
		AdminPassword: adminPassword,
		PublicDir:     publicDir,
		Production:    os.Getenv("APP_ENV") == "production",
	}

	// An external connection string switches the storage engine; otherwise
	// fall back to the embedded single-file engine.
	if postgresURL := os.Getenv("DATABASE_URL"); postgresURL != "" {
		config.DatabaseType = Postgres
		config.PostgresURL = postgresURL
	} else {
		config.DatabaseType = SQLite
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
		}
		config.SQLitePath = sqlitePath
	}

	return config, nil
}
