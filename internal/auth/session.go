package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"vehicle-registry/models"
)

const sessionName = "vehicle-registry-session"

// SessionTTL is the absolute session lifetime. Sessions are not renewed on
// access; expiry is measured from login.
const SessionTTL = 24 * time.Hour

// SessionManager issues and checks cookie-backed sessions.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret []byte, secure bool) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
	return &SessionManager{store: store}
}

// Establish starts a session for the given user with an absolute expiry.
func (m *SessionManager) Establish(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	session.Values["expires_at"] = time.Now().Add(SessionTTL).Unix()
	return session.Save(r, w)
}

// Clear invalidates the caller's session immediately.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// CurrentUsername reports whether the request carries a valid, unexpired
// session and, if so, the associated username. It has no side effects.
func (m *SessionManager) CurrentUsername(r *http.Request) (string, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}

	username, ok := session.Values["username"].(string)
	if !ok || username == "" {
		return "", false
	}

	expiresAt, ok := session.Values["expires_at"].(int64)
	if !ok || time.Now().Unix() >= expiresAt {
		return "", false
	}

	return username, true
}
