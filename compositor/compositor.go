// Package compositor flattens an uploaded design onto a garment mockup.
//
// Both images are drawn into one fixed-size canvas so a PlacementTransform, expressed as
// fractions of the canvas, means the same thing whatever the upload's native resolution.
// The overlay geometry mirrors the studio preview: the design is contained in a base box of
// half the canvas width by a third of its height, scaled, rotated clockwise and centered on
// the normalized position.
package compositor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
)

// DefaultCanvasSize is the side of the square output raster
const DefaultCanvasSize = 800

// Compositor renders CompositeImages. It holds no per-call state and is safe for concurrent use.
type Compositor struct {
	width   int
	height  int
	mockups *MockupRegistry
	loader  Loader // mockup backgrounds
	uploads Loader // buyer overlays
}

// refChecker is implemented by loaders that refuse some references without loading them
type refChecker interface {
	Check(ref string) error
}

// New creates a Compositor with a square canvas of canvasSize pixels (DefaultCanvasSize when <= 0).
// mockupLoader reads the registered backgrounds; uploadLoader reads layer sources.
func New(mockupLoader, uploadLoader Loader, mockups *MockupRegistry, canvasSize int) *Compositor {
	if canvasSize <= 0 {
		canvasSize = DefaultCanvasSize
	}
	return &Compositor{
		width:   canvasSize,
		height:  canvasSize,
		mockups: mockups,
		loader:  mockupLoader,
		uploads: uploadLoader,
	}
}

// CanvasSize returns the output width and height
func (c *Compositor) CanvasSize() (int, int) {
	return c.width, c.height
}

// Composite draws layer over the mockup registered for view and encodes the result as PNG.
// A missing layer is a caller error: there is nothing to composite.
// Load failures of either image return *apperr.ImageLoadError.
func (c *Compositor) Composite(ctx context.Context, view models.View, layer *models.DesignLayer) (*models.CompositeImage, error) {
	if layer == nil || strings.TrimSpace(layer.SourceImage) == "" {
		return nil, apperr.Validation("sourceImage", "a design layer is required for compositing")
	}
	if layer.TargetView != "" && layer.TargetView != view {
		return nil, apperr.Validation("targetView", fmt.Sprintf("layer targets %q, not %q", layer.TargetView, view))
	}

	if checker, ok := c.uploads.(refChecker); ok {
		if err := checker.Check(layer.SourceImage); err != nil {
			return nil, apperr.Validation("sourceImage", err.Error())
		}
	}

	transform := layer.Transform.Clamp()
	if err := transform.Validate(); err != nil {
		return nil, apperr.Validation("transform", err.Error())
	}

	backgroundRef, err := c.mockups.Lookup(view)
	if err != nil {
		return nil, err
	}

	var background, overlay image.Image
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := c.loader.Load(gctx, backgroundRef)
		if err != nil {
			return &apperr.ImageLoadError{Asset: "background", Ref: backgroundRef, Err: err}
		}
		background = img
		return nil
	})
	g.Go(func() error {
		img, err := c.uploads.Load(gctx, layer.SourceImage)
		if err != nil {
			return &apperr.ImageLoadError{Asset: "overlay", Ref: layer.SourceImage, Err: err}
		}
		overlay = img
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas := c.Render(background, overlay, transform)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode composite: %w", err)
	}

	return &models.CompositeImage{
		View:         view,
		PixelWidth:   c.width,
		PixelHeight:  c.height,
		EncodedBytes: buf.Bytes(),
	}, nil
}

// Render draws background (contained and centered) and then overlay placed by t.
// t is expected to be clamped and validated.
func (c *Compositor) Render(background, overlay image.Image, t models.PlacementTransform) *image.NRGBA {
	w, h := c.width, c.height
	canvas := imaging.New(w, h, color.NRGBA{})

	bw, bh := containSize(background.Bounds().Dx(), background.Bounds().Dy(), float64(w), float64(h))
	canvas = imaging.OverlayCenter(canvas, imaging.Resize(background, bw, bh, imaging.Lanczos), 1.0)

	// Base box is W/2 x H/3; scaling the box is the same as scaling the contained overlay
	boxW := float64(w) / 2 * t.Scale
	boxH := float64(h) / 3 * t.Scale
	ow, oh := containSize(overlay.Bounds().Dx(), overlay.Bounds().Dy(), boxW, boxH)
	placed := imaging.Resize(overlay, ow, oh, imaging.Lanczos)

	// imaging rotates counter-clockwise
	if angle := math.Mod(t.RotationDegrees, 360); angle != 0 {
		placed = imaging.Rotate(placed, -angle, color.NRGBA{})
	}

	cx := t.NormalizedX * float64(w)
	cy := t.NormalizedY * float64(h)
	pb := placed.Bounds()
	pos := image.Pt(
		int(math.Round(cx-float64(pb.Dx())/2)),
		int(math.Round(cy-float64(pb.Dy())/2)),
	)
	return imaging.Overlay(canvas, placed, pos, 1.0)
}

// containSize fits srcW x srcH inside maxW x maxH keeping the aspect ratio, scaling up or down
func containSize(srcW, srcH int, maxW, maxH float64) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 1, 1
	}
	ratio := math.Min(maxW/float64(srcW), maxH/float64(srcH))
	w := int(math.Round(float64(srcW) * ratio))
	h := int(math.Round(float64(srcH) * ratio))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
