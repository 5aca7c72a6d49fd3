package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"vehicle-registry/internal/auth"
	"vehicle-registry/internal/vehicle"
	"vehicle-registry/middleware"
)

type WebHandler struct {
	vehicleHandlers *vehicle.VehicleHandlers
	authHandlers    *auth.AuthHandlers
	middleware      *middleware.Middleware
	publicDir       string
}

func NewWebHandler(
	vehicleHandlers *vehicle.VehicleHandlers,
	authHandlers *auth.AuthHandlers,
	mw *middleware.Middleware,
	publicDir string,
) *WebHandler {
	return &WebHandler{
		vehicleHandlers: vehicleHandlers,
		authHandlers:    authHandlers,
		middleware:      mw,
		publicDir:       publicDir,
	}
}

func (h *WebHandler) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	// Session endpoints, no auth required
	api.HandleFunc("/login", h.authHandlers.Login).Methods("POST")
	api.HandleFunc("/logout", h.authHandlers.Logout).Methods("POST")
	api.HandleFunc("/auth/check", h.authHandlers.CheckAuth).Methods("GET")

	// Vehicle record endpoints, all gated
	vehicles := api.PathPrefix("/vehicles").Subrouter()
	vehicles.Use(h.middleware.RequireAuth)
	vehicles.HandleFunc("", h.vehicleHandlers.GetAllVehicles).Methods("GET")
	vehicles.HandleFunc("/search", h.vehicleHandlers.SearchVehicles).Methods("GET")
	vehicles.HandleFunc("", h.vehicleHandlers.CreateVehicle).Methods("POST")
	vehicles.HandleFunc("/{id:[0-9]+}", h.vehicleHandlers.DeleteVehicle).Methods("DELETE")

	// Browser client
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(h.publicDir)))

	return r
}
