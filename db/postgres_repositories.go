package db

import (
	"context"
	"database/sql"
	"fmt"

	"vehicle-registry/models"
)

// PostgresVehicleRepository implements the VehicleRepository interface for PostgreSQL
type PostgresVehicleRepository struct {
	db *sql.DB
}

// NewPostgresVehicleRepository creates a new PostgresVehicleRepository
func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{db: db}
}


// FindAll returns all vehicles, newest first
func (r *PostgresVehicleRepository) FindAll(ctx context.Context) ([]*models.Vehicle, error) {
	query := `SELECT id, name, phone, make, model, color, license_plate, created_at
	FROM vehicles ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicleRows(rows)
}

// Search returns vehicles where any text field contains the query, newest first.
// ILIKE folds case per the database locale, while the SQLite engine's LIKE only
// folds ASCII, so non-ASCII queries can match differently between engines.
func (r *PostgresVehicleRepository) Search(ctx context.Context, search string) ([]*models.Vehicle, error) {
	pattern := "%" + search + "%"
	query := `SELECT id, name, phone, make, model, color, license_plate, created_at
	FROM vehicles
	WHERE name ILIKE $1
	   OR phone ILIKE $1
	   OR make ILIKE $1
	   OR model ILIKE $1
	   OR color ILIKE $1
	   OR license_plate ILIKE $1
	ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("error searching vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicleRows(rows)
}

// Create inserts a new vehicle and assigns its id and creation timestamp
func (r *PostgresVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	query := `INSERT INTO vehicles (name, phone, make, model, color, license_plate)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		vehicle.Name, vehicle.Phone, vehicle.Make, vehicle.Model,
		vehicle.Color, vehicle.LicensePlate).Scan(&vehicle.ID, &vehicle.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting vehicle: %w", err)
	}

	return vehicle, nil
}

// DeleteByID removes a vehicle by its id
func (r *PostgresVehicleRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting vehicle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// PostgresUserRepository implements the UserRepository interface for PostgreSQL
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}


// FindByUsername finds a user by exact username
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	row := r.db.QueryRowContext(ctx, query, username)

	var user models.User
	var createdAt sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}

	return &user, nil
}

// Create inserts a new user and assigns its id and creation timestamp
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, password_hash) VALUES ($1, $2)
	RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

// Count returns the number of users
func (r *PostgresUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
