package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
)

const userIDKey = "user_id"

// Sessions keeps the signed-in user id in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
	name  string
}

// NewSessions creates a cookie session store. The secret must be at least
// 32 bytes long.
func NewSessions(secret, name string) (*Sessions, error) {
	if len(secret) < 32 {
		return nil, errors.New("session secret must be at least 32 characters long")
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options.HttpOnly = true
	store.Options.Path = "/"
	store.Options.SameSite = http.SameSiteLaxMode

	return &Sessions{store: store, name: name}, nil
}

// Login records the user in the session of the request.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := s.store.Get(r, s.name)
	session.Values[userIDKey] = userID
	session.Options.Secure = isSecure(r)

	return session.Save(r, w)
}

// Logout removes the user from the session and expires the cookie.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, s.name)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	session.Options.Secure = isSecure(r)

	return session.Save(r, w)
}

// UserID returns the user recorded in the session of the request.
func (s *Sessions) UserID(r *http.Request) (uint, bool) {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		return 0, false
	}

	id, ok := session.Values[userIDKey].(uint)
	return id, ok
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
