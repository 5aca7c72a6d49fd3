package vehicle

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"vehicle-registry/db"
	"vehicle-registry/models"
)

type VehicleHandlers struct {
	Service *VehicleService
}

func NewVehicleHandlers(service *VehicleService) *VehicleHandlers {
	return &VehicleHandlers{Service: service}
}

func (h *VehicleHandlers) GetAllVehicles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vehicles, err := h.Service.FindAll(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if vehicles == nil {
		vehicles = []*models.Vehicle{}
	}
	json.NewEncoder(w).Encode(vehicles)
}

func (h *VehicleHandlers) SearchVehicles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vehicles, err := h.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if vehicles == nil {
		vehicles = []*models.Vehicle{}
	}
	json.NewEncoder(w).Encode(vehicles)
}

func (h *VehicleHandlers) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	input, err := decodeVehicle(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request format"})
		return
	}

	created, err := h.Service.Create(r.Context(), input)
	if err != nil {
		if err == ErrMissingFields {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":      created.ID,
		"message": "Vehicle added successfully",
		"vehicle": created,
	})
}

func (h *VehicleHandlers) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid vehicle id"})
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if err == db.ErrNotFound {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "vehicle not found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Vehicle deleted successfully"})
}

// decodeVehicle reads a JSON body, falling back to form encoding.
func decodeVehicle(r *http.Request) (*models.Vehicle, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var vehicle models.Vehicle
		if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
			return nil, err
		}
		return &vehicle, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &models.Vehicle{
		Name:         r.FormValue("name"),
		Phone:        r.FormValue("phone"),
		Make:         r.FormValue("make"),
		Model:        r.FormValue("model"),
		Color:        r.FormValue("color"),
		LicensePlate: r.FormValue("license_plate"),
	}, nil
}
