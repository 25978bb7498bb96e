package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
)

func TestStaticCredentialStoreWithPlainPassword(t *testing.T) {
	store, err := NewStaticCredentialStore("owner@koon7r.com", "s3cret", "")
	require.NoError(t, err)

	id, err := store.Authenticate(context.Background(), "Owner@Koon7r.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, id.IsAdmin())
	assert.Equal(t, "owner@koon7r.com", id.Email)

	_, err = store.Authenticate(context.Background(), "owner@koon7r.com", "wrong")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = store.Authenticate(context.Background(), "someone@else.com", "s3cret")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestStaticCredentialStoreWithHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	store, err := NewStaticCredentialStore("owner@koon7r.com", "ignored", string(hash))
	require.NoError(t, err)

	_, err = store.Authenticate(context.Background(), "owner@koon7r.com", "hashed-pass")
	assert.NoError(t, err)

	_, err = store.Authenticate(context.Background(), "owner@koon7r.com", "ignored")
	assert.Error(t, err)

	_, err = NewStaticCredentialStore("owner@koon7r.com", "", "not-a-hash")
	assert.ErrorContains(t, err, "invalid ADMIN_PASSWORD_HASH")
}

func TestStaticCredentialStoreUnconfigured(t *testing.T) {
	store, err := NewStaticCredentialStore("", "", "")
	require.NoError(t, err)

	_, err = store.Authenticate(context.Background(), "", "")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestSessionRoundTrip(t *testing.T) {
	manager, err := NewSessionManager("test-secret", false)
	require.NoError(t, err)

	token, err := manager.Issue(&Identity{Email: "owner@koon7r.com", Name: "Admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	id, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@koon7r.com", id.Email)
	assert.Equal(t, models.RoleAdmin, id.Role)
}

func TestSessionRejectsForeignAndExpiredTokens(t *testing.T) {
	manager, err := NewSessionManager("test-secret", false)
	require.NoError(t, err)
	other, err := NewSessionManager("other-secret", false)
	require.NoError(t, err)

	token, err := other.Issue(&Identity{Email: "x@y.z", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = manager.Verify(token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issuedAt }
	token, err = manager.Issue(&Identity{Email: "x@y.z", Role: models.RoleAdmin})
	require.NoError(t, err)

	manager.now = func() time.Time { return issuedAt.Add(SessionTTL + time.Hour) }
	_, err = manager.Verify(token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = manager.Verify("garbage")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestSessionCookie(t *testing.T) {
	manager, err := NewSessionManager("test-secret", true)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, manager.SetCookie(rec, &Identity{Email: "owner@koon7r.com", Role: models.RoleAdmin}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, int(SessionTTL.Seconds()), cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookies[0])
	id, err := manager.FromRequest(req)
	require.NoError(t, err)
	assert.True(t, id.IsAdmin())

	anonymous := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	id, err = manager.FromRequest(anonymous)
	assert.NoError(t, err)
	assert.Nil(t, id)

	clearRec := httptest.NewRecorder()
	manager.ClearCookie(clearRec)
	cleared := clearRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))
	assert.False(t, FromContext(ctx).IsAdmin())

	ctx = WithIdentity(ctx, &Identity{Email: "a@b.c", Role: models.RoleUser})
	require.NotNil(t, FromContext(ctx))
	assert.False(t, FromContext(ctx).IsAdmin())
}
