package service

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/pricing"
)

// CatalogService serves the product catalog and custom price table
type CatalogService struct {
	engine *pricing.Engine
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(engine *pricing.Engine) *CatalogService {
	return &CatalogService{engine: engine}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// ListProducts returns the catalog, optionally narrowed to one category
func (s *CatalogService) ListProducts(category string) *ProductsResponse {
	products := s.engine.Products()
	category = strings.TrimSpace(category)
	if category != "" {
		filtered := make([]pricing.Product, 0, len(products))
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	log.Printf("✅ ListProducts: Returning %d products (category=%q)", len(products), category)
	return &ProductsResponse{Currency: s.engine.Currency(), Products: products}
}

// CustomPrices returns the custom design price table
func (s *CatalogService) CustomPrices() *CustomPricesResponse {
	return &CustomPricesResponse{
		Currency:      s.engine.Currency(),
		CustomPricing: s.engine.CustomPricing(),
	}
}
