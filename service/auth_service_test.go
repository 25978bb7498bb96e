package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koon7r-storefront/apperr"
	"koon7r-storefront/auth"
	"koon7r-storefront/models"
)

func newTestCredentials(t *testing.T) auth.CredentialStore {
	t.Helper()
	store, err := auth.NewStaticCredentialStore("Owner@Koon7r.com", "s3cret", "")
	require.NoError(t, err)
	return store
}

func TestAdminLogin(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(newTestCredentials(t), users)

	identity, err := svc.AdminLogin(context.Background(), &models.AdminLoginRequest{
		Email:    " owner@koon7r.com ",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())

	require.Len(t, users.upserted, 1)
	assert.Equal(t, "admin:owner@koon7r.com", users.upserted[0].ID)
	assert.Equal(t, models.RoleAdmin, users.upserted[0].Role)
	assert.Equal(t, "password", users.upserted[0].LoginMethod)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(newTestCredentials(t), users)

	_, err := svc.AdminLogin(context.Background(), &models.AdminLoginRequest{Email: "owner@koon7r.com", Password: "guess"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	assert.Empty(t, users.upserted)

	_, err = svc.AdminLogin(context.Background(), &models.AdminLoginRequest{Email: "owner", Password: "s3cret"})
	assert.True(t, apperr.IsValidation(err))
}

func TestAdminLoginSurvivesUserUpsertFailure(t *testing.T) {
	svc := NewAuthService(newTestCredentials(t), &fakeUserRepo{err: apperr.ErrDatabaseUnavailable})

	identity, err := svc.AdminLogin(context.Background(), &models.AdminLoginRequest{Email: "owner@koon7r.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())
}
