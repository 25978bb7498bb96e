package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacementTransformClamp(t *testing.T) {
	got := PlacementTransform{NormalizedX: -0.3, NormalizedY: 1.7, Scale: 2, RotationDegrees: 45}.Clamp()

	assert.Equal(t, 0.0, got.NormalizedX)
	assert.Equal(t, 1.0, got.NormalizedY)
	assert.Equal(t, 2.0, got.Scale)
	assert.Equal(t, 45.0, got.RotationDegrees)
}

func TestPlacementTransformValidate(t *testing.T) {
	assert.NoError(t, DefaultPlacement().Validate())

	bad := []PlacementTransform{
		{NormalizedX: 0.5, NormalizedY: 0.5, Scale: 0},
		{NormalizedX: 0.5, NormalizedY: 0.5, Scale: -1},
		{NormalizedX: 0.5, NormalizedY: 0.5, Scale: MaxScale + 1},
		{NormalizedX: math.NaN(), NormalizedY: 0.5, Scale: 1},
		{NormalizedX: 0.5, NormalizedY: 0.5, Scale: 1, RotationDegrees: math.Inf(1)},
	}
	for _, tr := range bad {
		assert.Error(t, tr.Validate(), "%+v", tr)
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusShipped.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
}

func TestSettingsKeys(t *testing.T) {
	key, ok := ParseSettingKey("contactPhone")
	assert.True(t, ok)

	var s Settings
	s.Set(key, "+970 59 123 4567")
	assert.Equal(t, "+970 59 123 4567", s.ContactPhone)
	assert.Equal(t, "+970 59 123 4567", s.Get(SettingContactPhone))

	_, ok = ParseSettingKey("theme")
	assert.False(t, ok)
}

func TestLineKey(t *testing.T) {
	assert.Equal(t, "1-M", LineKey("1", "M"))
	assert.Equal(t, "custom_x", LineKey("custom_x", ""))
}
