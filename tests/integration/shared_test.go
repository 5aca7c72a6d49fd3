package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"vehicle-registry/db"
	"vehicle-registry/internal/auth"
	"vehicle-registry/internal/config"
	"vehicle-registry/internal/vehicle"
	"vehicle-registry/internal/web"
	"vehicle-registry/middleware"
	"vehicle-registry/tests/testutils"
)

type testApp struct {
	server      *testutils.TestServer
	userRepo    db.UserRepository
	vehicleRepo db.VehicleRepository
	cfg         *config.Config
}

// setupApp wires the full stack the way cmd/main.go does, against a
// temp-dir SQLite database, default account included.
func setupApp(t *testing.T) (*testApp, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	cfg := testutils.GetTestConfig()

	userRepo := factory.NewUserRepository()
	vehicleRepo := factory.NewVehicleRepository()

	err := auth.EnsureDefaultUser(context.Background(), userRepo, cfg.AdminUsername, cfg.AdminPassword)
	require.NoError(t, err)

	sessionManager := auth.NewSessionManager(cfg.SessionSecret, false)
	vehicleService := vehicle.NewVehicleService(vehicleRepo)
	vehicleHandlers := vehicle.NewVehicleHandlers(vehicleService)
	authHandlers := auth.NewAuthHandlers(userRepo, sessionManager, cfg)
	authMiddleware := middleware.NewMiddleware(sessionManager, cfg.SessionSecret)

	router := web.NewWebHandler(vehicleHandlers, authHandlers, authMiddleware, cfg.PublicDir).SetupRoutes()
	server := testutils.NewTestServer(t, router)

	app := &testApp{
		server:      server,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		cfg:         cfg,
	}
	return app, func() {
		server.Close()
		cleanup()
	}
}

// login authenticates with the default account and returns the bearer token.
// The session cookie lands in the server's cookie jar as a side effect.
func login(t *testing.T, app *testApp) string {
	resp := app.server.POST("/api/login", map[string]string{
		"username": app.cfg.AdminUsername,
		"password": app.cfg.AdminPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["token"])
	require.Equal(t, app.cfg.AdminUsername, body["username"])

	return body["token"]
}
