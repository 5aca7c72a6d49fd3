package middleware

import (
	"encoding/json"
	"net/http"

	"vehicle-registry/internal/auth"
)

type Middleware struct {
	Sessions *auth.SessionManager
	Secret   []byte
}

func NewMiddleware(sessions *auth.SessionManager, secret []byte) *Middleware {
	return &Middleware{Sessions: sessions, Secret: secret}
}

// RequireAuth gates a route on a valid session cookie or bearer token. The
// check runs on every request and has no side effects.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.Sessions.CurrentUsername(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := auth.BearerUsername(r, m.Secret); ok {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
	})
}
