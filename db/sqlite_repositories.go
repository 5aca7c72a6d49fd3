package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vehicle-registry/models"
)

// SQLiteVehicleRepository implements the VehicleRepository interface for SQLite
type SQLiteVehicleRepository struct {
	db *sql.DB
}

// NewSQLiteVehicleRepository creates a new SQLiteVehicleRepository
func NewSQLiteVehicleRepository(db *sql.DB) *SQLiteVehicleRepository {
	return &SQLiteVehicleRepository{db: db}
}


// FindAll returns all vehicles, newest first
func (r *SQLiteVehicleRepository) FindAll(ctx context.Context) ([]*models.Vehicle, error) {
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
// SQLite LIKE is case-insensitive for ASCII.
func (r *SQLiteVehicleRepository) Search(ctx context.Context, search string) ([]*models.Vehicle, error) {
	pattern := "%" + search + "%"
	query := `SELECT id, name, phone, make, model, color, license_plate, created_at
	FROM vehicles
	WHERE name LIKE ?
	   OR phone LIKE ?
	   OR make LIKE ?
	   OR model LIKE ?
	   OR color LIKE ?
	   OR license_plate LIKE ?
	ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query,
		pattern, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("error searching vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicleRows(rows)
}

// Create inserts a new vehicle and assigns its id and creation timestamp
func (r *SQLiteVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	vehicle.CreatedAt = time.Now()

	query := `INSERT INTO vehicles (name, phone, make, model, color, license_plate, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		vehicle.Name, vehicle.Phone, vehicle.Make, vehicle.Model,
		vehicle.Color, vehicle.LicensePlate, vehicle.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading inserted vehicle id: %w", err)
	}
	vehicle.ID = id

	return vehicle, nil
}

// DeleteByID removes a vehicle by its id
func (r *SQLiteVehicleRepository) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
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

func scanVehicleRows(rows *sql.Rows) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	for rows.Next() {
		var vehicle models.Vehicle
		var createdAt sql.NullTime

		err := rows.Scan(&vehicle.ID, &vehicle.Name, &vehicle.Phone, &vehicle.Make,
			&vehicle.Model, &vehicle.Color, &vehicle.LicensePlate, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}

		if createdAt.Valid {
			vehicle.CreatedAt = createdAt.Time
		}

		vehicles = append(vehicles, &vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}


// FindByUsername finds a user by exact username
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`
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
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()

	query := `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading inserted user id: %w", err)
	}
	user.ID = id

	return user, nil
}

// Count returns the number of users
func (r *SQLiteUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
