package vehicle

import (
	"context"
	"errors"
	"strings"

	"vehicle-registry/db"
	"vehicle-registry/models"
)

// ErrMissingFields is returned when any required field is empty after trimming.
var ErrMissingFields = errors.New("all fields are required")

type VehicleService struct {
	repo db.VehicleRepository
}

func NewVehicleService(repo db.VehicleRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

// FindAll returns every vehicle, newest first.
func (s *VehicleService) FindAll(ctx context.Context) ([]*models.Vehicle, error) {
	return s.repo.FindAll(ctx)
}

// Search returns vehicles matching the query as a case-insensitive substring
// of any text field. An empty query returns an empty set, not all records;
// "clear search" on the client lists instead of searching.
func (s *VehicleService) Search(ctx context.Context, query string) ([]*models.Vehicle, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Vehicle{}, nil
	}
	return s.repo.Search(ctx, query)
}

// Create validates and persists a new vehicle record.
func (s *VehicleService) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	vehicle.Name = strings.TrimSpace(vehicle.Name)
	vehicle.Phone = strings.TrimSpace(vehicle.Phone)
	vehicle.Make = strings.TrimSpace(vehicle.Make)
	vehicle.Model = strings.TrimSpace(vehicle.Model)
	vehicle.Color = strings.TrimSpace(vehicle.Color)
	vehicle.LicensePlate = strings.TrimSpace(vehicle.LicensePlate)

	if vehicle.Name == "" || vehicle.Phone == "" || vehicle.Make == "" ||
		vehicle.Model == "" || vehicle.Color == "" || vehicle.LicensePlate == "" {
		return nil, ErrMissingFields
	}

	return s.repo.Create(ctx, vehicle)
}

// Delete removes a vehicle by id; db.ErrNotFound if no such record exists.
func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}
