package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/models"
	"koon7r-storefront/service"
)

// OrderController handles order submission
type OrderController struct {
	service service.OrderServiceInterface
	carts   service.CartServiceInterface
}

// NewOrderController creates a new OrderController. carts may be nil.
func NewOrderController(svc service.OrderServiceInterface, carts service.CartServiceInterface) *OrderController {
	return &OrderController{service: svc, carts: carts}
}

// CreateOrder handles POST /api/orders
// Example request:
// {
//   "customerName": "Lina",
//   "customerPhone": "+970591234567",
//   "customerAddress": "Ramallah, Main St 4",
//   "items": [{"id": "1", "name": "HOODIE NAKBA", "price": 45, "size": "L", "quantity": 1}],
//   "notes": "Gift wrap"
// }
// Example response: the persisted order with status "pending" and the server-side total
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateOrder: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "CreateOrder", err)
		return
	}

	order, err := c.service.Submit(r.Context(), &req)
	if err != nil {
		respondError(w, "CreateOrder", err)
		return
	}

	// The cart that produced the order is done
	if cookie, err := r.Cookie(CartSessionCookie); err == nil && c.carts != nil {
		if err := c.carts.Clear(r.Context(), cookie.Value); err != nil {
			log.Printf("⚠️ CreateOrder: Could not clear cart: %v", err)
		}
	}

	log.Printf("✅ CreateOrder: Created order %s", order.ID)
	writeJSON(w, http.StatusCreated, order)
}
