package service

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
	"koon7r-storefront/compositor"
	"koon7r-storefront/metrics"
	"koon7r-storefront/models"
)

// DesignService composites uploaded artwork onto garment mockups
type DesignService struct {
	compositor *compositor.Compositor
}

// NewDesignService creates a new DesignService
func NewDesignService(c *compositor.Compositor) *DesignService {
	return &DesignService{compositor: c}
}

// Ensure DesignService implements DesignServiceInterface
var _ DesignServiceInterface = (*DesignService)(nil)

// CanvasSize returns the pixel size of every composite
func (s *DesignService) CanvasSize() (int, int) {
	return s.compositor.CanvasSize()
}

// Composite flattens layer onto the mockup for view.
// When either image cannot be loaded the raw upload is returned with Composited=false
// so the order can still be placed. Validation errors are returned as is.
func (s *DesignService) Composite(ctx context.Context, view models.View, layer *models.DesignLayer) (*models.DesignImage, error) {
	start := time.Now()
	log.Printf("📦 Composite: Compositing %s view", view)

	if layer != nil && layer.TargetView == "" {
		scoped := *layer
		scoped.TargetView = view
		layer = &scoped
	}

	composite, err := s.compositor.Composite(ctx, view, layer)
	if err != nil {
		var loadErr *apperr.ImageLoadError
		if !errors.As(err, &loadErr) {
			log.Printf("❌ Composite: %v", err)
			return nil, err
		}

		log.Printf("⚠️ Composite: %v, falling back to the raw upload", loadErr)
		metrics.RecordComposite(string(view), true, time.Since(start))
		return &models.DesignImage{
			View:       view,
			Image:      layer.SourceImage,
			Composited: false,
		}, nil
	}

	metrics.RecordComposite(string(view), false, time.Since(start))
	log.Printf("✅ Composite: %s view composited in %s (%d bytes)", view, time.Since(start), len(composite.EncodedBytes))
	return &models.DesignImage{
		View:       view,
		Image:      composite.DataURI(),
		Composited: true,
	}, nil
}
