package models

import (
	"encoding/base64"
	"fmt"
	"math"
)

// View is the garment side a design is placed on
type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
)

// Valid reports whether v is a known garment view
func (v View) Valid() bool {
	return v == ViewFront || v == ViewBack
}

// MaxScale bounds the overlay scale factor so the rendered overlay stays a sane size
const MaxScale = 10.0

// PlacementTransform positions an overlay on the mockup canvas.
// NormalizedX/NormalizedY are fractions of the canvas width/height.
type PlacementTransform struct {
	NormalizedX     float64 `json:"normalizedX"`
	NormalizedY     float64 `json:"normalizedY"`
	Scale           float64 `json:"scale"`
	RotationDegrees float64 `json:"rotationDegrees"`
}

// DefaultPlacement matches the studio's initial position (centered, upper quarter)
func DefaultPlacement() PlacementTransform {
	return PlacementTransform{NormalizedX: 0.5, NormalizedY: 0.25, Scale: 1}
}

// Clamp pins the position inside the canvas bounds
func (t PlacementTransform) Clamp() PlacementTransform {
	t.NormalizedX = clamp01(t.NormalizedX)
	t.NormalizedY = clamp01(t.NormalizedY)
	return t
}

// Validate checks the transform is finite and has a usable scale
func (t PlacementTransform) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"normalizedX", t.NormalizedX},
		{"normalizedY", t.NormalizedY},
		{"scale", t.Scale},
		{"rotationDegrees", t.RotationDegrees},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number", f.name)
		}
	}
	if t.Scale <= 0 || t.Scale > MaxScale {
		return fmt.Errorf("scale must be in (0, %g]", MaxScale)
	}
	return nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// DesignLayer is one uploaded artwork placed on one garment view
type DesignLayer struct {
	SourceImage string             `json:"sourceImage"` // data URI or URL
	Transform   PlacementTransform `json:"transform"`
	TargetView  View               `json:"targetView"`
}

// CompositeImage is the flattened mockup + overlay raster. Immutable once produced.
type CompositeImage struct {
	View         View
	PixelWidth   int
	PixelHeight  int
	EncodedBytes []byte // PNG
}

// DataURI returns the PNG as an inline data URI
func (c *CompositeImage) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(c.EncodedBytes)
}

// DesignImage is what the cart keeps for one custom view: the composite, or the raw
// upload when compositing failed (Composited=false).
type DesignImage struct {
	View       View   `json:"view"`
	Image      string `json:"image"`
	Composited bool   `json:"composited"`
}

// CompositeRequest represents the request body for POST /api/designs/composite
// Example: {"view": "front", "sourceImage": "data:image/png;base64,...",
//
//	"transform": {"normalizedX": 0.5, "normalizedY": 0.25, "scale": 1.2, "rotationDegrees": 15}}
type CompositeRequest struct {
	View        View               `json:"view" validate:"required,oneof=front back"`
	SourceImage string             `json:"sourceImage" validate:"required"`
	Transform   PlacementTransform `json:"transform"`
}

// CompositeResponse is returned by POST /api/designs/composite
type CompositeResponse struct {
	View       View   `json:"view"`
	Image      string `json:"image"`
	Composited bool   `json:"composited"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}
