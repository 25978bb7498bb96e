// Package cart assembles cart line items from catalog products and custom designs.
package cart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
	"koon7r-storefront/pricing"
	"koon7r-storefront/utils"
)

// CustomItemPrefix marks the synthetic id of custom design lines
const CustomItemPrefix = "custom_"

// CustomItemRequest describes a custom garment whose views were already composited
type CustomItemRequest struct {
	GarmentType string
	Size        string
	Technique   string
	Front       *models.DesignImage
	Back        *models.DesignImage
}

// Cart is an ordered list of line items. Not safe for concurrent use; session
// handlers load, modify and save it per request.
type Cart struct {
	engine *pricing.Engine
	lines  []models.CartLineItem
}

// New creates an empty cart priced by engine
func New(engine *pricing.Engine) *Cart {
	return &Cart{engine: engine}
}

// Restore rebuilds a cart from previously saved lines
func Restore(engine *pricing.Engine, lines []models.CartLineItem) *Cart {
	c := New(engine)
	c.lines = append(c.lines, lines...)
	return c
}

// AddCatalogItem adds one unit of a catalog product in size.
// An existing line with the same id and size gets its quantity incremented.
func (c *Cart) AddCatalogItem(catalogID int64, size string) (*models.CartLineItem, error) {
	product, ok := c.engine.Product(catalogID)
	if !ok {
		return nil, apperr.Validation("catalogId", fmt.Sprintf("unknown product %d", catalogID))
	}

	size = utils.NormalizeSize(size)
	if len(product.Sizes) > 0 {
		if size == "" {
			return nil, apperr.Validation("size", "is required")
		}
		if !product.HasSize(size) {
			return nil, apperr.Validation("size", fmt.Sprintf("%s is not available for %s", size, product.Name))
		}
	}

	return c.add(models.CartLineItem{
		ID:    strconv.FormatInt(product.ID, 10),
		Name:  product.Name,
		Price: product.Price,
		Size:  size,
		Image: product.Image,
	})
}

// AddCustomItem adds a custom garment line priced from the custom price table.
// The line image is the front view when present, else the back view. With both
// views present the back image rides in Custom.BackImage.
func (c *Cart) AddCustomItem(req CustomItemRequest) (*models.CartLineItem, error) {
	front := req.Front != nil && req.Front.Image != ""
	back := req.Back != nil && req.Back.Image != ""
	if !front && !back {
		return nil, apperr.Validation("design", "a custom item needs a front or back design")
	}

	size := utils.NormalizeSize(req.Size)
	if size == "" {
		return nil, apperr.Validation("size", "is required")
	}
	if !c.engine.IsCustomSize(size) {
		return nil, apperr.Validation("size", fmt.Sprintf("%s is not available for custom garments", size))
	}

	price, err := c.engine.CustomPrice(req.GarmentType, req.Technique, front, back)
	if err != nil {
		return nil, err
	}

	garment := utils.MapGarmentTypeToCode(req.GarmentType)
	info := &models.CustomDesignInfo{
		GarmentType: garment,
		Technique:   utils.MapTechniqueToCode(req.Technique),
	}

	line := models.CartLineItem{
		ID:     CustomItemPrefix + uuid.New().String(),
		Name:   "Custom " + strings.ToUpper(garment),
		Price:  price,
		Size:   size,
		Custom: info,
	}

	if front {
		info.Views = append(info.Views, models.ViewFront)
		line.Image = req.Front.Image
	}
	if back {
		info.Views = append(info.Views, models.ViewBack)
		if front {
			info.BackImage = req.Back.Image
		} else {
			line.Image = req.Back.Image
		}
	}

	return c.add(line)
}

func (c *Cart) add(line models.CartLineItem) (*models.CartLineItem, error) {
	key := models.LineKey(line.ID, line.Size)
	for i := range c.lines {
		if models.LineKey(c.lines[i].ID, c.lines[i].Size) == key {
			if c.lines[i].Quantity >= models.MaxLineQuantity {
				return nil, apperr.Validation("quantity", fmt.Sprintf("at most %d per line", models.MaxLineQuantity))
			}
			c.lines[i].Quantity++
			out := c.lines[i]
			return &out, nil
		}
	}

	line.LineID = key
	line.Quantity = 1
	c.lines = append(c.lines, line)
	return &line, nil
}

// RemoveItem drops the line with lineID
func (c *Cart) RemoveItem(lineID string) error {
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart line %s: %w", lineID, apperr.ErrNotFound)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the line items in insertion order
func (c *Cart) Lines() []models.CartLineItem {
	out := make([]models.CartLineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count returns the number of units across all lines
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Total returns the sum of price * quantity
func (c *Cart) Total() int64 {
	var total int64
	for i := range c.lines {
		total += c.lines[i].Subtotal()
	}
	return total
}

// Response renders the cart for the API
func (c *Cart) Response() models.CartResponse {
	return models.CartResponse{
		Items: c.Lines(),
		Count: c.Count(),
		Total: c.Total(),
	}
}
