package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
	"koon7r-storefront/notify"
)

func TestMessageServiceCreate(t *testing.T) {
	repo := &fakeMessageRepo{}
	notifier := &recordingNotifier{channel: "test"}
	svc := NewMessageService(repo, []notify.Notifier{notifier})

	msg, err := svc.Create(context.Background(), &models.CreateMessageRequest{
		Name:    " Omar ",
		Email:   "omar@example.com",
		Message: "Do you ship to Amman?",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.ID, "msg_"))
	assert.Equal(t, "Omar", msg.Name)
	require.Len(t, repo.created, 1)

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "New Message from Omar", notifier.sent[0].Title)
}

func TestMessageServiceValidation(t *testing.T) {
	repo := &fakeMessageRepo{}
	notifier := &recordingNotifier{channel: "test"}
	svc := NewMessageService(repo, []notify.Notifier{notifier})

	_, err := svc.Create(context.Background(), &models.CreateMessageRequest{Name: "Omar", Email: "omar", Message: "hi"})
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)

	_, err = svc.Create(context.Background(), &models.CreateMessageRequest{Name: "Omar", Email: "omar@example.com", Message: "   "})
	assert.True(t, apperr.IsValidation(err))

	assert.Empty(t, repo.created)
	assert.Zero(t, notifier.count())
}

func TestMessageServicePersistenceFailure(t *testing.T) {
	notifier := &recordingNotifier{channel: "test"}
	svc := NewMessageService(&fakeMessageRepo{err: apperr.ErrDatabaseUnavailable}, []notify.Notifier{notifier})

	_, err := svc.Create(context.Background(), &models.CreateMessageRequest{Name: "Omar", Email: "omar@example.com", Message: "hi"})
	assert.True(t, errors.Is(err, apperr.ErrDatabaseUnavailable))
	assert.Zero(t, notifier.count())
}

func TestCatalogService(t *testing.T) {
	svc := NewCatalogService(testEngine(t))

	all := svc.ListProducts("")
	assert.Equal(t, "USD", all.Currency)
	assert.Len(t, all.Products, 4)

	hoodies := svc.ListProducts("Hoodie")
	require.Len(t, hoodies.Products, 2)
	for _, p := range hoodies.Products {
		assert.Equal(t, "hoodie", p.Category)
	}

	prices := svc.CustomPrices()
	assert.Equal(t, int64(20), prices.Base["tshirt"])
	assert.Equal(t, int64(15), prices.Design["embroidery"])
}
