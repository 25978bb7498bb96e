package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"koon7r-storefront/cart"
	"koon7r-storefront/models"
	"koon7r-storefront/pricing"
	"koon7r-storefront/utils"
)

// CartService keeps one cart per browser session
type CartService struct {
	store   cart.Store
	engine  *pricing.Engine
	designs DesignServiceInterface
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, engine *pricing.Engine, designs DesignServiceInterface) *CartService {
	return &CartService{store: store, engine: engine, designs: designs}
}

// Ensure CartService implements CartServiceInterface
var _ CartServiceInterface = (*CartService)(nil)

func (s *CartService) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		log.Printf("❌ load: Error loading cart for session: %v", err)
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart.Restore(s.engine, lines), nil
}

func (s *CartService) save(ctx context.Context, sessionID string, c *cart.Cart) (*models.CartResponse, error) {
	if err := s.store.Save(ctx, sessionID, c.Lines()); err != nil {
		log.Printf("❌ save: Error saving cart: %v", err)
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	resp := c.Response()
	return &resp, nil
}

// Get returns the session cart
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.CartResponse, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := c.Response()
	return &resp, nil
}

// AddCatalogItem adds one unit of a catalog product
func (s *CartService) AddCatalogItem(ctx context.Context, sessionID string, req *models.AddCatalogItemRequest) (*models.CartResponse, error) {
	log.Printf("📦 AddCatalogItem: Adding product=%d size=%s", req.CatalogID, req.Size)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	line, err := c.AddCatalogItem(req.CatalogID, req.Size)
	if err != nil {
		log.Printf("❌ AddCatalogItem: %v", err)
		return nil, err
	}

	log.Printf("✅ AddCatalogItem: Line %s now has quantity %d", line.LineID, line.Quantity)
	return s.save(ctx, sessionID, c)
}

// AddCustomItem composites each present design layer and adds the custom garment
func (s *CartService) AddCustomItem(ctx context.Context, sessionID string, req *models.AddCustomItemRequest) (*models.CartResponse, error) {
	log.Printf("📦 AddCustomItem: Adding custom garment=%s technique=%s size=%s", req.GarmentType, req.Technique, req.Size)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	item := cart.CustomItemRequest{
		GarmentType: req.GarmentType,
		Size:        req.Size,
		Technique:   req.Technique,
	}

	g, gctx := errgroup.WithContext(ctx)
	if req.Front != nil {
		g.Go(func() error {
			img, err := s.designs.Composite(gctx, models.ViewFront, req.Front)
			item.Front = img
			return err
		})
	}
	if req.Back != nil {
		g.Go(func() error {
			img, err := s.designs.Composite(gctx, models.ViewBack, req.Back)
			item.Back = img
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("❌ AddCustomItem: %v", err)
		return nil, err
	}

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	line, err := c.AddCustomItem(item)
	if err != nil {
		log.Printf("❌ AddCustomItem: %v", err)
		return nil, err
	}

	log.Printf("✅ AddCustomItem: Added %s at %d", line.Name, line.Price)
	return s.save(ctx, sessionID, c)
}

// RemoveItem drops the line with lineID
func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) (*models.CartResponse, error) {
	log.Printf("📦 RemoveItem: Removing line=%s", lineID)

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(lineID); err != nil {
		return nil, err
	}
	return s.save(ctx, sessionID, c)
}

// Clear empties the session cart
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	log.Printf("📦 Clear: Clearing cart")
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
