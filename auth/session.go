package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
)

const (
	// SessionCookieName is the cookie carrying the signed session token
	SessionCookieName = "app_session_id"
	// SessionTTL is one year, matching the cookie lifetime
	SessionTTL = 365 * 24 * time.Hour

	issuer = "koon7r-storefront"
)

// SessionClaims is the JWT payload of a session cookie
type SessionClaims struct {
	Email string      `json:"email"`
	Name  string      `json:"name,omitempty"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies session tokens
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessionManager creates a manager signing with secret (HS256). An empty secret is replaced
// by a random one, so sessions do not survive a restart.
func NewSessionManager(secret string, secure bool) (*SessionManager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		log.Printf("⚠️ SessionManager: SESSION_SECRET not set, using a random secret")
	}

	return &SessionManager{
		secret: key,
		ttl:    SessionTTL,
		secure: secure,
		now:    time.Now,
	}, nil
}

// Issue signs a token for id
func (m *SessionManager) Issue(id *Identity) (string, error) {
	now := m.now().UTC()
	claims := SessionClaims{
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Verify parses a token and returns its identity. Any failure is ErrUnauthorized.
func (m *SessionManager) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperr.ErrUnauthorized
	}

	return &Identity{Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}

// SetCookie issues a token for id and writes the session cookie
func (m *SessionManager) SetCookie(w http.ResponseWriter, id *Identity) error {
	token, err := m.Issue(id)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the identity of the request's session cookie.
// A missing cookie returns (nil, nil); an invalid one returns ErrUnauthorized.
func (m *SessionManager) FromRequest(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	return m.Verify(cookie.Value)
}
