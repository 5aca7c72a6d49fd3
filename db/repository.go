package db

import (
	"context"
	"database/sql"
	"errors"

	"vehicle-registry/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Engine identifies the storage engine backing the repositories.
type Engine string

const (
	EngineSQLite   Engine = "sqlite"
	EnginePostgres Engine = "postgres"
)

// VehicleRepository defines the interface for vehicle record operations.
// Repositories share the underlying *sql.DB; its lifecycle belongs to the
// caller that opened it.
type VehicleRepository interface {
	FindAll(ctx context.Context) ([]*models.Vehicle, error)
	Search(ctx context.Context, query string) ([]*models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	DeleteByID(ctx context.Context, id int64) error
}

// UserRepository defines the interface for login account operations
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// RepositoryFactory creates repositories for the configured storage engine
type RepositoryFactory struct {
	DB     *sql.DB
	Engine Engine
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqlDB *sql.DB, engine Engine) *RepositoryFactory {
	return &RepositoryFactory{
		DB:     sqlDB,
		Engine: engine,
	}
}

// NewVehicleRepository creates a new vehicle repository
func (f *RepositoryFactory) NewVehicleRepository() VehicleRepository {
	if f.Engine == EnginePostgres {
		return NewPostgresVehicleRepository(f.DB)
	}
	return NewSQLiteVehicleRepository(f.DB)
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	if f.Engine == EnginePostgres {
		return NewPostgresUserRepository(f.DB)
	}
	return NewSQLiteUserRepository(f.DB)
}
