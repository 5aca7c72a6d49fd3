package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vehicle-registry/models"
)

var testSecret = []byte("test_jwt_secret_key_for_testing_only")

func TestGenerateAndParseToken(t *testing.T) {
	tokenStr, err := GenerateToken(testSecret, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	username, err := ParseToken(testSecret, tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenStr, err := GenerateToken(testSecret, "admin")
	require.NoError(t, err)

	_, err = ParseToken([]byte("some_other_secret"), tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	claims := &Claims{
		Username: "admin",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionManager_EstablishAndCheck(t *testing.T) {
	manager := NewSessionManager(testSecret, false)
	user := &models.User{ID: 1, Username: "admin"}

	// Establish a session and capture the cookie it sets
	rec := httptest.NewRecorder()
	loginReq := httptest.NewRequest("POST", "/api/login", nil)
	require.NoError(t, manager.Establish(rec, loginReq, user))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// A request carrying the cookie is authenticated
	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	username, ok := manager.CurrentUsername(req)
	assert.True(t, ok)
	assert.Equal(t, "admin", username)

	// A bare request is not
	bare := httptest.NewRequest("GET", "/api/vehicles", nil)
	_, ok = manager.CurrentUsername(bare)
	assert.False(t, ok)
}

func TestSessionManager_ExpiredSessionRejected(t *testing.T) {
	manager := NewSessionManager(testSecret, false)

	// Write a session whose absolute expiry already passed; the cookie
	// itself is still well-formed and signed with the right secret
	rec := httptest.NewRecorder()
	loginReq := httptest.NewRequest("POST", "/api/login", nil)
	session, err := manager.store.Get(loginReq, sessionName)
	require.NoError(t, err)
	session.Values["user_id"] = int64(1)
	session.Values["username"] = "admin"
	session.Values["expires_at"] = time.Now().Add(-time.Minute).Unix()
	require.NoError(t, session.Save(loginReq, rec))

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	_, ok := manager.CurrentUsername(req)
	assert.False(t, ok)
}

func TestSessionManager_ClearInvalidates(t *testing.T) {
	manager := NewSessionManager(testSecret, false)
	user := &models.User{ID: 1, Username: "admin"}

	rec := httptest.NewRecorder()
	loginReq := httptest.NewRequest("POST", "/api/login", nil)
	require.NoError(t, manager.Establish(rec, loginReq, user))

	// Clear on a request that carries the session
	logoutReq := httptest.NewRequest("POST", "/api/logout", nil)
	for _, c := range rec.Result().Cookies() {
		logoutReq.AddCookie(c)
	}
	clearRec := httptest.NewRecorder()
	require.NoError(t, manager.Clear(clearRec, logoutReq))

	// The replacement cookie no longer authenticates
	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	for _, c := range clearRec.Result().Cookies() {
		req.AddCookie(c)
	}
	_, ok := manager.CurrentUsername(req)
	assert.False(t, ok)
}

func TestSessionManager_SecureFlagInProduction(t *testing.T) {
	manager := NewSessionManager(testSecret, true)
	user := &models.User{ID: 1, Username: "admin"}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/login", nil)
	require.NoError(t, manager.Establish(rec, req, user))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
}

func TestBearerUsername(t *testing.T) {
	tokenStr, err := GenerateToken(testSecret, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	username, ok := BearerUsername(req, testSecret)
	assert.True(t, ok)
	assert.Equal(t, "admin", username)

	noHeader := httptest.NewRequest("GET", "/api/vehicles", nil)
	_, ok = BearerUsername(noHeader, testSecret)
	assert.False(t, ok)

	wrongScheme := httptest.NewRequest("GET", "/api/vehicles", nil)
	wrongScheme.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	_, ok = BearerUsername(wrongScheme, testSecret)
	assert.False(t, ok)
}
