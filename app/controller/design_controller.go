package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/models"
	"koon7r-storefront/service"
	"koon7r-storefront/utils"
)

// DesignController handles HTTP requests for the design studio
type DesignController struct {
	service service.DesignServiceInterface
}

// NewDesignController creates a new DesignController
func NewDesignController(svc service.DesignServiceInterface) *DesignController {
	return &DesignController{service: svc}
}

// Composite handles POST /api/designs/composite
// Example request:
// {
//   "view": "front",
//   "sourceImage": "data:image/png;base64,...",
//   "transform": {"normalizedX": 0.5, "normalizedY": 0.25, "scale": 1, "rotationDegrees": 0}
// }
// Example response:
// {"view": "front", "image": "data:image/png;base64,...", "composited": true, "width": 800, "height": 800}
func (c *DesignController) Composite(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Composite: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CompositeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "Composite", err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		respondError(w, "Composite", err)
		return
	}

	img, err := c.service.Composite(r.Context(), req.View, &models.DesignLayer{
		SourceImage: req.SourceImage,
		Transform:   req.Transform,
		TargetView:  req.View,
	})
	if err != nil {
		respondError(w, "Composite", err)
		return
	}

	resp := models.CompositeResponse{
		View:       img.View,
		Image:      img.Image,
		Composited: img.Composited,
	}
	if img.Composited {
		resp.Width, resp.Height = c.service.CanvasSize()
	}

	log.Printf("✅ Composite: Returned %s view (composited=%t)", img.View, img.Composited)
	writeJSON(w, http.StatusOK, resp)
}
