package service

import (
	"context"

	"koon7r-storefront/models"
)

// OrderSheetServiceInterface defines the contract for printable order work sheets
type OrderSheetServiceInterface interface {
	RenderHTML(ctx context.Context, detail *models.OrderDetail) (string, error)
	RenderPDF(ctx context.Context, detail *models.OrderDetail) ([]byte, error)
}
