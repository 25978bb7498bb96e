package compositor

import (
	"fmt"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
)

const (
	DefaultFrontMockup = "static/mockups/front.png"
	DefaultBackMockup  = "static/mockups/back.png"
)

// MockupRegistry maps a garment view to its background mockup reference
type MockupRegistry struct {
	mockups map[models.View]string
}

// NewMockupRegistry registers the front and back mockups. Empty refs fall back to the defaults.
func NewMockupRegistry(front, back string) *MockupRegistry {
	if front == "" {
		front = DefaultFrontMockup
	}
	if back == "" {
		back = DefaultBackMockup
	}
	return &MockupRegistry{
		mockups: map[models.View]string{
			models.ViewFront: front,
			models.ViewBack:  back,
		},
	}
}

// Lookup returns the mockup reference for view
func (r *MockupRegistry) Lookup(view models.View) (string, error) {
	ref, ok := r.mockups[view]
	if !ok {
		return "", apperr.Validation("view", fmt.Sprintf("no mockup registered for view %q", view))
	}
	return ref, nil
}
