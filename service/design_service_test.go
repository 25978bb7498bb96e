package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
	"koon7r-storefront/utils"
)

func TestDesignServiceComposites(t *testing.T) {
	svc := newTestDesignService(&fakeLoader{images: map[string]image.Image{
		"art.png": solidImage(20, 20, color.NRGBA{B: 255, A: 255}),
	}})

	img, err := svc.Composite(context.Background(), models.ViewFront, &models.DesignLayer{
		SourceImage: "art.png",
		Transform:   models.DefaultPlacement(),
	})
	require.NoError(t, err)
	assert.True(t, img.Composited)
	assert.Equal(t, models.ViewFront, img.View)
	require.True(t, strings.HasPrefix(img.Image, "data:image/png;base64,"))

	_, data, err := utils.ParseDataURI(img.Image)
	require.NoError(t, err)
	decoded, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 100, decoded.Bounds().Dy())

	w, h := svc.CanvasSize()
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
}

func TestDesignServiceFallsBackToRawOverlay(t *testing.T) {
	svc := newTestDesignService(&fakeLoader{fail: map[string]error{
		"https://cdn.example.com/missing.png": errors.New("404"),
	}})

	img, err := svc.Composite(context.Background(), models.ViewBack, &models.DesignLayer{
		SourceImage: "https://cdn.example.com/missing.png",
		Transform:   models.DefaultPlacement(),
	})
	require.NoError(t, err)
	assert.False(t, img.Composited)
	assert.Equal(t, models.ViewBack, img.View)
	assert.Equal(t, "https://cdn.example.com/missing.png", img.Image)
}

func TestDesignServiceFallsBackWhenMockupMissing(t *testing.T) {
	loader := &fakeLoader{images: map[string]image.Image{"art.png": solidImage(5, 5, color.Black)}}
	svc := newTestDesignService(loader)
	loader.fail = map[string]error{"front.png": errors.New("gone")}

	img, err := svc.Composite(context.Background(), models.ViewFront, &models.DesignLayer{
		SourceImage: "art.png",
		Transform:   models.DefaultPlacement(),
	})
	require.NoError(t, err)
	assert.False(t, img.Composited)
	assert.Equal(t, "art.png", img.Image)
}

func TestDesignServiceReturnsValidationErrors(t *testing.T) {
	svc := newTestDesignService(&fakeLoader{})

	_, err := svc.Composite(context.Background(), models.ViewFront, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Composite(context.Background(), models.ViewFront, &models.DesignLayer{
		SourceImage: "art.png",
		Transform:   models.PlacementTransform{NormalizedX: 0.5, NormalizedY: 0.5, Scale: 0},
	})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Composite(context.Background(), models.ViewFront, &models.DesignLayer{
		SourceImage: "art.png",
		Transform:   models.DefaultPlacement(),
		TargetView:  models.ViewBack,
	})
	assert.True(t, apperr.IsValidation(err))
}
