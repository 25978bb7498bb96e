package pricing

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
	"koon7r-storefront/utils"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// PricingConfig represents the catalog and custom pricing configuration structure
type PricingConfig struct {
	Currency string        `yaml:"currency"`
	Products []Product     `yaml:"products"`
	Custom   CustomPricing `yaml:"custom"`
}

// Product is one catalog entry
type Product struct {
	ID          int64    `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Price       int64    `yaml:"price" json:"price"`
	Image       string   `yaml:"image" json:"image"`
	Sizes       []string `yaml:"sizes" json:"sizes"`
	Category    string   `yaml:"category" json:"category"`
	Badge       string   `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// HasSize reports whether size is offered for the product
func (p *Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// CustomPricing holds base prices per garment and surcharge per design technique
type CustomPricing struct {
	Sizes  []string         `yaml:"sizes" json:"sizes"`
	Base   map[string]int64 `yaml:"base" json:"base"`
	Design map[string]int64 `yaml:"design" json:"design"`
}

// Engine answers catalog lookups and custom design pricing
type Engine struct {
	config   *PricingConfig
	products map[int64]*Product
}

// NewEngine creates a pricing engine from a YAML config file.
// An empty configPath loads the embedded default catalog.
func NewEngine(configPath string) (*Engine, error) {
	data := defaultCatalog
	source := "embedded catalog"

	if configPath != "" {
		// Resolve config path
		if !filepath.IsAbs(configPath) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
			configPath = filepath.Join(wd, configPath)
		}

		var err error
		data, err = os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read pricing config: %w", err)
		}
		source = configPath
	}

	engine, err := ParseEngine(data)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ PricingEngine: Loaded %d products from %s", len(engine.config.Products), source)
	return engine, nil
}

// ParseEngine builds an engine from raw YAML
func ParseEngine(data []byte) (*Engine, error) {
	var config PricingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	// Normalize sizes so lookups match utils.NormalizeSize output
	for i := range config.Products {
		for j, size := range config.Products[i].Sizes {
			config.Products[i].Sizes[j] = utils.NormalizeSize(size)
		}
	}
	for i, size := range config.Custom.Sizes {
		config.Custom.Sizes[i] = utils.NormalizeSize(size)
	}

	// Keep products ordered by id
	sort.Slice(config.Products, func(i, j int) bool {
		return config.Products[i].ID < config.Products[j].ID
	})

	products := make(map[int64]*Product, len(config.Products))
	for i := range config.Products {
		products[config.Products[i].ID] = &config.Products[i]
	}

	return &Engine{config: &config, products: products}, nil
}

func validateConfig(config *PricingConfig) error {
	if config.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(config.Products) == 0 {
		return fmt.Errorf("products are required")
	}
	seen := make(map[int64]bool)
	for _, p := range config.Products {
		if p.ID <= 0 {
			return fmt.Errorf("product %q has invalid id %d", p.Name, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true
		if p.Price < 0 {
			return fmt.Errorf("product %d has negative price", p.ID)
		}
	}
	if len(config.Custom.Base) == 0 {
		return fmt.Errorf("custom base prices are required")
	}
	if len(config.Custom.Design) == 0 {
		return fmt.Errorf("custom design surcharges are required")
	}
	return nil
}

// Currency returns the configured currency code
func (e *Engine) Currency() string {
	return e.config.Currency
}

// Products returns the catalog ordered by id
func (e *Engine) Products() []Product {
	out := make([]Product, len(e.config.Products))
	copy(out, e.config.Products)
	return out
}

// Product looks up a catalog entry by id
func (e *Engine) Product(id int64) (*Product, bool) {
	p, ok := e.products[id]
	return p, ok
}

// ProductByLineID resolves a cart line id ("2") to its catalog product
func (e *Engine) ProductByLineID(lineID string) (*Product, bool) {
	id, err := strconv.ParseInt(lineID, 10, 64)
	if err != nil {
		return nil, false
	}
	return e.Product(id)
}

// CustomPricing returns the custom design price table
func (e *Engine) CustomPricing() CustomPricing {
	return e.config.Custom
}

// CustomPrice computes the unit price of a custom garment:
// base[garment] + surcharge[technique] for each side that carries a design.
// One technique applies to both sides.
func (e *Engine) CustomPrice(garmentType, technique string, front, back bool) (int64, error) {
	garment := utils.MapGarmentTypeToCode(garmentType)
	base, ok := e.config.Custom.Base[garment]
	if !ok {
		return 0, apperr.Validation("garmentType", fmt.Sprintf("unknown garment type %q", garmentType))
	}

	tech := utils.MapTechniqueToCode(technique)
	surcharge, ok := e.config.Custom.Design[tech]
	if !ok {
		return 0, apperr.Validation("technique", fmt.Sprintf("unknown design technique %q", technique))
	}

	price := base
	if front {
		price += surcharge
	}
	if back {
		price += surcharge
	}
	return price, nil
}

// RepriceLine rebuilds the server-owned fields of a line from the catalog or the custom price
// table. Catalog lines take name, price and image from the product and must name an offered
// size. Custom lines are priced from the inline design images they carry, and the views they
// claim must match those images. Failures are ValidationErrors relative to the line.
func (e *Engine) RepriceLine(line *models.CartLineItem) error {
	if line.Custom != nil {
		return e.repriceCustomLine(line)
	}

	product, ok := e.ProductByLineID(line.ID)
	if !ok {
		return apperr.Validation("", fmt.Sprintf("unknown product %q", line.ID))
	}

	size := utils.NormalizeSize(line.Size)
	switch {
	case len(product.Sizes) == 0 && size != "":
		return apperr.Validation("size", fmt.Sprintf("%s comes in one size", product.Name))
	case len(product.Sizes) > 0 && !product.HasSize(size):
		return apperr.Validation("size", fmt.Sprintf("%q is not available for %s", line.Size, product.Name))
	}

	line.Name = product.Name
	line.Price = product.Price
	line.Image = product.Image
	line.Size = size
	return nil
}

func (e *Engine) repriceCustomLine(line *models.CartLineItem) error {
	info := line.Custom
	if !isInlineImage(line.Image) {
		return apperr.Validation("image", "a custom item needs an inline front or back design")
	}
	if info.BackImage != "" && !isInlineImage(info.BackImage) {
		return apperr.Validation("custom.backImage", "must be an inline image")
	}

	claimed, err := claimedViews(info.Views)
	if err != nil {
		return err
	}

	// Image is the front when both sides carry a design, otherwise whichever side was designed
	front, back := claimed[models.ViewFront], claimed[models.ViewBack]
	if info.BackImage != "" {
		if !front || !back {
			return apperr.Validation("custom.views", "two design images need both front and back views")
		}
	} else if front == back {
		return apperr.Validation("custom.views", "one design image needs exactly one view")
	}

	size := utils.NormalizeSize(line.Size)
	if size == "" {
		return apperr.Validation("size", "is required")
	}
	if !e.IsCustomSize(size) {
		return apperr.Validation("size", fmt.Sprintf("%s is not available for custom garments", size))
	}

	price, err := e.CustomPrice(info.GarmentType, info.Technique, front, back)
	if err != nil {
		return err
	}

	garment := utils.MapGarmentTypeToCode(info.GarmentType)
	info.GarmentType = garment
	info.Technique = utils.MapTechniqueToCode(info.Technique)
	line.Name = "Custom " + strings.ToUpper(garment)
	line.Price = price
	line.Size = size
	return nil
}

// claimedViews checks a custom line's view list: front and/or back, each at most once
func claimedViews(views []models.View) (map[models.View]bool, error) {
	if len(views) == 0 {
		return nil, apperr.Validation("custom.views", "a custom item needs a front or back design")
	}
	seen := make(map[models.View]bool, len(views))
	for _, v := range views {
		if v != models.ViewFront && v != models.ViewBack {
			return nil, apperr.Validation("custom.views", fmt.Sprintf("unknown view %q", v))
		}
		if seen[v] {
			return nil, apperr.Validation("custom.views", fmt.Sprintf("view %q listed twice", v))
		}
		seen[v] = true
	}
	return seen, nil
}

func isInlineImage(ref string) bool {
	return strings.HasPrefix(ref, "data:image/")
}

// IsCustomSize reports whether size is offered for custom garments
func (e *Engine) IsCustomSize(size string) bool {
	if len(e.config.Custom.Sizes) == 0 {
		return true
	}
	return contains(e.config.Custom.Sizes, size)
}

func contains(slice []string, value string) bool {
	for _, v := range slice {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
