package service

import "koon7r-storefront/pricing"

// CatalogServiceInterface defines the contract for catalog reads
type CatalogServiceInterface interface {
	ListProducts(category string) *ProductsResponse
	CustomPrices() *CustomPricesResponse
}

// ProductsResponse is returned by GET /api/products
type ProductsResponse struct {
	Currency string            `json:"currency"`
	Products []pricing.Product `json:"products"`
}

// CustomPricesResponse is returned by GET /api/custom/prices
type CustomPricesResponse struct {
	Currency string `json:"currency"`
	pricing.CustomPricing
}
