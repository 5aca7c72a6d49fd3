package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"vehicle-registry/db"
	"vehicle-registry/internal/config"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandlers struct {
	Users    db.UserRepository
	Sessions *SessionManager
	Config   *config.Config
}

func NewAuthHandlers(users db.UserRepository, sessions *SessionManager, cfg *config.Config) *AuthHandlers {
	return &AuthHandlers{Users: users, Sessions: sessions, Config: cfg}
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	creds, err := decodeCredentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request format"})
		return
	}

	user, err := h.Users.FindByUsername(r.Context(), creds.Username)
	if err != nil {
		if err == db.ErrNotFound {
			// Same response as a wrong password; don't leak which usernames exist
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		return
	}

	if err := h.Sessions.Establish(w, r, user); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to establish session"})
		return
	}

	tokenString, err := GenerateToken(h.Config.SessionSecret, user.Username)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate token"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"token":    tokenString,
		"username": user.Username,
	})
}

func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.Sessions.Clear(w, r); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to clear session"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}

func (h *AuthHandlers) CheckAuth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	username, ok := h.Sessions.CurrentUsername(r)
	if !ok {
		username, ok = BearerUsername(r, h.Config.SessionSecret)
	}
	if !ok {
		json.NewEncoder(w).Encode(map[string]interface{}{"authenticated": false})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"authenticated": true,
		"username":      username,
	})
}

// decodeCredentials reads a JSON body, falling back to form encoding.
func decodeCredentials(r *http.Request) (Credentials, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return Credentials{}, err
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return Credentials{}, err
	}
	return Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}, nil
}

// BearerUsername checks an Authorization header for a valid bearer token.
func BearerUsername(r *http.Request, secret []byte) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	username, err := ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return "", false
	}
	return username, true
}
