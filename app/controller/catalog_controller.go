package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/service"
)

// CatalogController handles HTTP requests for the product catalog
type CatalogController struct {
	service service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{service: svc}
}

// ListProducts handles GET /api/products[?category=hoodie]
// Example response:
// {
//   "currency": "USD",
//   "products": [{"id": 1, "name": "HOODIE NAKBA", "price": 45, "sizes": ["S", "M", "L"], ...}]
// }
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListProducts: Received %s request to %s", r.Method, r.URL.Path)
	writeJSON(w, http.StatusOK, c.service.ListProducts(r.URL.Query().Get("category")))
}

// CustomPrices handles GET /api/custom/prices
func (c *CatalogController) CustomPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.service.CustomPrices())
}
