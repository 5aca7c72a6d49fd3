package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vehicle-registry/internal/auth"
	"vehicle-registry/tests/testutils"
)

func TestAuthHandlers_Integration(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	t.Run("Login_WrongPassword_NoLockout", func(t *testing.T) {
		// Repeated failures keep failing the same way; there is no lockout
		for i := 0; i < 3; i++ {
			resp := app.server.POST("/api/login", map[string]string{
				"username": app.cfg.AdminUsername,
				"password": "wrong_password",
			})
			testutils.AssertErrorResponse(t, resp, http.StatusUnauthorized, "invalid credentials")
		}
	})

	t.Run("Login_UnknownUser", func(t *testing.T) {
		resp := app.server.POST("/api/login", map[string]string{
			"username": "nobody",
			"password": "anything",
		})
		testutils.AssertErrorResponse(t, resp, http.StatusUnauthorized, "invalid credentials")
	})

	t.Run("Login_InvalidBody", func(t *testing.T) {
		resp := app.server.POST("/api/login", "not an object")
		testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "")
	})

	t.Run("AuthCheck_Lifecycle", func(t *testing.T) {
		var check map[string]interface{}
		resp := app.server.GET("/api/auth/check")
		testutils.AssertJSONResponse(t, resp, http.StatusOK, &check)
		assert.Equal(t, false, check["authenticated"])

		login(t, app)

		resp = app.server.GET("/api/auth/check")
		testutils.AssertJSONResponse(t, resp, http.StatusOK, &check)
		assert.Equal(t, true, check["authenticated"])
		assert.Equal(t, app.cfg.AdminUsername, check["username"])

		resp = app.server.POST("/api/logout", nil)
		testutils.AssertJSONResponse(t, resp, http.StatusOK, nil)

		resp = app.server.GET("/api/auth/check")
		testutils.AssertJSONResponse(t, resp, http.StatusOK, &check)
		assert.Equal(t, false, check["authenticated"])
	})

	t.Run("Login_FormEncodedFallback", func(t *testing.T) {
		resp := app.server.POSTForm("/api/login", url.Values{
			"username": {app.cfg.AdminUsername},
			"password": {app.cfg.AdminPassword},
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["token"])
	})

	t.Run("BearerToken_GrantsAccessWithoutCookie", func(t *testing.T) {
		token := login(t, app)

		resp := app.server.GETWithToken("/api/vehicles", token)
		testutils.AssertJSONResponse(t, resp, http.StatusOK, nil)
	})

	t.Run("Login_AdministrativelyInsertedUser", func(t *testing.T) {
		// No self-service signup exists; extra accounts come from direct
		// inserts into the user table
		_, err := app.userRepo.Create(context.Background(), testutils.CreateTestUser(t, "second_user", "another_password"))
		require.NoError(t, err)

		resp := app.server.POST("/api/login", map[string]string{
			"username": "second_user",
			"password": "another_password",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "second_user", body["username"])
	})

	t.Run("BearerToken_GarbageRejected", func(t *testing.T) {
		resp := app.server.GETWithToken("/api/vehicles", "not-a-token")
		testutils.AssertErrorResponse(t, resp, http.StatusUnauthorized, "authentication required")
	})
}

func TestDefaultAccountBootstrap(t *testing.T) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	defer cleanup()

	userRepo := factory.NewUserRepository()
	cfg := testutils.GetTestConfig()
	ctx := context.Background()

	// First boot with an empty table creates exactly one account
	require.NoError(t, auth.EnsureDefaultUser(ctx, userRepo, cfg.AdminUsername, cfg.AdminPassword))
	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// A second boot leaves the table alone
	require.NoError(t, auth.EnsureDefaultUser(ctx, userRepo, cfg.AdminUsername, cfg.AdminPassword))
	count, err = userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	user, err := userRepo.FindByUsername(ctx, cfg.AdminUsername)
	require.NoError(t, err)
	assert.Equal(t, cfg.AdminUsername, user.Username)
	assert.NotEqual(t, cfg.AdminPassword, user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}
