// Package session issues and validates signed session cookies.
//
// The cookie value is an HS256-signed JWT carrying the username and an
// expiry, so a client cannot mint or alter an identity and sessions lapse
// on their own. Validation is stateless; there is no server-side session
// table.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

var (
	// ErrNoSession is returned when the request carries no session cookie.
	ErrNoSession = errors.New("no session cookie")
	// ErrInvalidSession is returned when the cookie fails verification
	// or has expired.
	ErrInvalidSession = errors.New("invalid session")
)

// Claims are the JWT claims carried by a session cookie.
type Claims struct {
	jwt.RegisteredClaims
	// Username is the authenticated identity.
	Username string `json:"username"`
}

// Manager signs and verifies session cookies with an HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager constructs a Manager. secret must be non-empty; ttl is the
// session lifetime.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Issue mints a session cookie for the given username.
func (m *Manager) Issue(username string) (*http.Cookie, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Validate extracts and verifies the session cookie from the request,
// returning the authenticated username. ErrNoSession is returned when the
// cookie is absent, ErrInvalidSession when it fails verification.
func (m *Manager) Validate(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrNoSession
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Username == "" {
		return "", ErrInvalidSession
	}
	return claims.Username, nil
}

// Clear returns a cookie that instructs the browser to drop the session.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
