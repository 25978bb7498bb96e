package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
	"koon7r-storefront/metrics"
	"koon7r-storefront/models"
	"koon7r-storefront/notify"
	"koon7r-storefront/pricing"
	"koon7r-storefront/repository"
	"koon7r-storefront/utils"
)

// followUpTimeout bounds notifications and archiving after an order is persisted.
// They run detached from the request so a client hanging up does not cut them short.
const followUpTimeout = 60 * time.Second

// OrderService handles order submission
type OrderService struct {
	orders    repository.OrderRepositoryInterface
	designs   repository.CustomDesignRepositoryInterface
	engine    *pricing.Engine
	notifiers []notify.Notifier
	archive   DesignArchiveInterface
}

// NewOrderService creates a new OrderService. archive may be nil to skip design archiving.
func NewOrderService(
	orders repository.OrderRepositoryInterface,
	designs repository.CustomDesignRepositoryInterface,
	engine *pricing.Engine,
	notifiers []notify.Notifier,
	archive DesignArchiveInterface,
) *OrderService {
	return &OrderService{
		orders:    orders,
		designs:   designs,
		engine:    engine,
		notifiers: notifiers,
		archive:   archive,
	}
}

// Ensure OrderService implements OrderServiceInterface
var _ OrderServiceInterface = (*OrderService)(nil)

// Submit validates and persists an order, then notifies the owner and archives custom designs.
// Only validation and persistence errors are returned; the follow-ups are best effort.
func (s *OrderService) Submit(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	log.Printf("📦 Submit: Received order from %q with %d items", req.CustomerName, len(req.Items))

	order, err := s.buildOrder(req)
	if err != nil {
		log.Printf("❌ Submit: Invalid order: %v", err)
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		log.Printf("❌ Submit: Error persisting order %s: %v", order.ID, err)
		return nil, err
	}
	metrics.RecordOrderCreated()
	log.Printf("✅ Submit: Order %s persisted, total=%s", order.ID, utils.FormatAmount(order.TotalAmount))

	followCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
	defer cancel()

	dispatch(followCtx, s.notifiers, notify.OrderNotification(order))
	s.archiveDesigns(followCtx, order)

	return order, nil
}

// buildOrder checks the request and reprices every line from the catalog
func (s *OrderService) buildOrder(req *models.CreateOrderRequest) (*models.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)
	address := strings.TrimSpace(req.CustomerAddress)
	email := strings.TrimSpace(req.CustomerEmail)

	switch {
	case name == "":
		return nil, apperr.Validation("customerName", "is required")
	case phone == "":
		return nil, apperr.Validation("customerPhone", "is required")
	case address == "":
		return nil, apperr.Validation("customerAddress", "is required")
	case len(req.Items) == 0:
		return nil, apperr.Validation("items", "an order needs at least one item")
	}
	if email != "" {
		if err := utils.ValidateEmail(email); err != nil {
			return nil, apperr.Validation("customerEmail", "must be a valid email address")
		}
	}

	items := make([]models.CartLineItem, len(req.Items))
	var total int64
	for i, item := range req.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.Quantity < 1 {
			return nil, apperr.Validation(field+".quantity", "must be at least 1")
		}
		if item.Quantity > models.MaxLineQuantity {
			return nil, apperr.Validation(field+".quantity", fmt.Sprintf("must be at most %d", models.MaxLineQuantity))
		}
		if item.Custom != nil {
			custom := *item.Custom
			item.Custom = &custom
		}
		if err := s.engine.RepriceLine(&item); err != nil {
			return nil, lineError(field, err)
		}
		if !item.IsCustom() || item.LineID == "" {
			item.LineID = models.LineKey(item.ID, item.Size)
		}

		subtotal, err := utils.MulAmount(item.Price, item.Quantity)
		if err == nil {
			total, err = utils.AddAmount(total, subtotal)
		}
		if err != nil {
			return nil, apperr.Validation(field, "order total is out of range")
		}
		items[i] = item
	}

	return &models.Order{
		ID:              "order_" + uuid.New().String(),
		UserID:          req.UserID,
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		CustomerAddress: address,
		Items:           items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		Notes:           strings.TrimSpace(req.Notes),
	}, nil
}

// lineError scopes a pricing error to the order line at field
func lineError(field string, err error) error {
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		return apperr.Validation(field, err.Error())
	}
	if verr.Field == "" {
		return apperr.Validation(field, verr.Message)
	}
	return apperr.Validation(field+"."+verr.Field, verr.Message)
}

// archiveDesigns stores the images of every custom line and records where they went
func (s *OrderService) archiveDesigns(ctx context.Context, order *models.Order) {
	if s.archive == nil {
		return
	}

	for i, item := range order.Items {
		if !item.IsCustom() {
			continue
		}

		design := &models.CustomDesign{
			ID:      "design_" + uuid.New().String(),
			OrderID: order.ID,
		}
		frontImage, backImage := item.Image, item.Custom.BackImage
		if !item.Custom.HasView(models.ViewFront) {
			frontImage, backImage = "", item.Image
		}
		design.FrontDesignURL = s.archiveImage(ctx, order.ID, i, models.ViewFront, frontImage)
		design.BackDesignURL = s.archiveImage(ctx, order.ID, i, models.ViewBack, backImage)

		if design.FrontDesignURL == "" && design.BackDesignURL == "" {
			continue
		}
		if err := s.designs.Create(ctx, design); err != nil {
			log.Printf("⚠️ archiveDesigns: Could not record design for order %s line %d: %v", order.ID, i, err)
		}
	}
}

// archiveImage uploads an inline image and returns its archive URL.
// Remote references are recorded as they are.
func (s *OrderService) archiveImage(ctx context.Context, orderID string, line int, view models.View, image string) string {
	if image == "" {
		return ""
	}
	if !strings.HasPrefix(image, "data:") {
		return image
	}

	mediaType, data, err := utils.ParseDataURI(image)
	if err != nil {
		log.Printf("⚠️ archiveImage: Skipping undecodable %s design of order %s: %v", view, orderID, err)
		return ""
	}

	name := fmt.Sprintf("%s_%d_%s%s", orderID, line+1, view, extensionFor(mediaType))
	url, err := s.archive.Store(ctx, name, mediaType, data)
	if err != nil {
		log.Printf("⚠️ archiveImage: %s archive failed for %s: %v", s.archive.Backend(), name, err)
		return ""
	}
	return url
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// dispatch sends n on every channel. Failures are logged and counted, never returned.
func dispatch(ctx context.Context, notifiers []notify.Notifier, n notify.Notification) {
	for _, notifier := range notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			var dispatchErr *apperr.NotificationDispatchError
			if !errors.As(err, &dispatchErr) {
				err = &apperr.NotificationDispatchError{Channel: notifier.Channel(), Err: err}
			}
			log.WithField("channel", notifier.Channel()).Printf("⚠️ dispatch: %v", err)
			metrics.RecordNotificationFailure(notifier.Channel())
		}
	}
}
