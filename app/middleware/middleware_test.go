package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koon7r-storefront/auth"
	"koon7r-storefront/models"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	handler := limiter.Handler(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "1", rec.Header().Get("Retry-After"))
			assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// a different client has its own budget
	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	limiter.Cleanup()
	req = httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientIP(t *testing.T) {
	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	assert.Equal(t, "192.0.2.7", ClientIP(req, proxies))

	// a direct client cannot pick its own address
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "192.0.2.7", ClientIP(req, proxies))
	assert.Equal(t, "192.0.2.7", ClientIP(req, nil))

	// behind the proxy the rightmost untrusted hop wins, whatever the client prepended
	req.RemoteAddr = "10.1.2.3:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 203.0.113.9 , 10.0.0.5")
	assert.Equal(t, "203.0.113.9", ClientIP(req, proxies))

	req.Header.Set("X-Forwarded-For", "garbage, 10.0.0.5")
	assert.Equal(t, "10.0.0.5", ClientIP(req, proxies))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "10.1.2.3", ClientIP(req, proxies))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", ClientIP(req, proxies))
}

func TestRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	handler := NewRateLimiter(0.001, 1).Handler(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = "192.0.2.7:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterKeysOnForwardedClientBehindProxy(t *testing.T) {
	handler := NewRateLimiter(0.001, 1, netip.MustParsePrefix("10.0.0.1/32")).Handler(okHandler)

	send := func(client string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", client)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
}

func TestSessionAttachesIdentity(t *testing.T) {
	sessions, err := auth.NewSessionManager("test-secret", false)
	require.NoError(t, err)

	token, err := sessions.Issue(&auth.Identity{Email: "owner@koon7r.com", Name: "Admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	var seen *auth.Identity
	handler := Session(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.True(t, seen.IsAdmin())
	assert.Equal(t, "owner@koon7r.com", seen.Email)
}

func TestSessionClearsInvalidCookie(t *testing.T) {
	sessions, err := auth.NewSessionManager("test-secret", false)
	require.NoError(t, err)

	called := false
	var seen *auth.Identity
	handler := Session(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Nil(t, seen)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLoggingRecordsStatus(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
