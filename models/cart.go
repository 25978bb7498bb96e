package models

import "strings"

// MaxLineQuantity caps the units of a single cart or order line
const MaxLineQuantity = 99

// CustomDesignInfo marks a line item as a custom design and keeps what its price was derived from
type CustomDesignInfo struct {
	GarmentType string `json:"garmentType"`
	Technique   string `json:"technique"`
	Views       []View `json:"views"`
	BackImage   string `json:"backImage,omitempty"` // set when both front and back carry a design
}

// HasView reports whether the custom design covers view v
func (c *CustomDesignInfo) HasView(v View) bool {
	for _, view := range c.Views {
		if view == v {
			return true
		}
	}
	return false
}

// CartLineItem represents a single line in the cart and, serialized, in an order.
// ID is the decimal catalog id for catalog products or a synthetic "custom_<uuid>" token.
// Example:
// {
//   "id": "2",
//   "lineId": "2-M",
//   "name": "T-SHIRT PALESTINE",
//   "price": 25,
//   "size": "M",
//   "image": "/products/back-tshirt.png",
//   "quantity": 2
// }
type CartLineItem struct {
	ID       string            `json:"id"`
	LineID   string            `json:"lineId,omitempty"`
	Name     string            `json:"name"`
	Price    int64             `json:"price"` // unit price, integer currency units
	Size     string            `json:"size,omitempty"`
	Image    string            `json:"image"` // URL or data URI
	Quantity int               `json:"quantity"`
	Custom   *CustomDesignInfo `json:"custom,omitempty"`
}

// LineKey builds the merge identity of a line: same id and size means same line
func LineKey(id, size string) string {
	if size == "" {
		return id
	}
	return id + "-" + size
}

// IsCustom reports whether the line carries a custom design
func (l *CartLineItem) IsCustom() bool {
	return l.Custom != nil
}

// HasInlineImage reports whether Image is an inline image data URI
func (l *CartLineItem) HasInlineImage() bool {
	return strings.HasPrefix(l.Image, "data:image")
}

// Subtotal returns price * quantity
func (l *CartLineItem) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// AddCatalogItemRequest represents the request body for POST /api/cart/items
// Example: {"catalogId": 1, "size": "M"}
type AddCatalogItemRequest struct {
	CatalogID int64  `json:"catalogId" validate:"required,gt=0"`
	Size      string `json:"size"`
}

// AddCustomItemRequest represents the request body for POST /api/cart/custom.
// Each present layer is composited onto its view's mockup before it is added.
// Example: {"garmentType": "tshirt", "size": "M", "technique": "embroidery",
//
//	"front": {"sourceImage": "data:image/png;base64,...", "transform": {...}, "targetView": "front"}}
type AddCustomItemRequest struct {
	GarmentType string       `json:"garmentType" validate:"required"`
	Size        string       `json:"size" validate:"required"`
	Technique   string       `json:"technique" validate:"required"`
	Front       *DesignLayer `json:"front,omitempty"`
	Back        *DesignLayer `json:"back,omitempty"`
}

// CartResponse is returned by the cart endpoints
type CartResponse struct {
	Items []CartLineItem `json:"items"`
	Count int            `json:"count"`
	Total int64          `json:"total"`
}
