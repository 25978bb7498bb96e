package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/cart"
	"koon7r-storefront/models"
	"koon7r-storefront/service"
)

// CartSessionCookie identifies the browser session that owns a cart
const CartSessionCookie = "shop_session-id"

// CartController handles HTTP requests for the session cart
type CartController struct {
	service service.CartServiceInterface
	secure  bool
}

// NewCartController creates a new CartController. secure marks the session cookie Secure.
func NewCartController(svc service.CartServiceInterface, secure bool) *CartController {
	return &CartController{service: svc, secure: secure}
}

// sessionID returns the cart session of the request, issuing a new cookie when there is none
func (c *CartController) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CartSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CartSessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cart.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// GetCart handles GET /api/cart
// Example response:
// {"items": [{"id": "2", "lineId": "2-M", "name": "T-SHIRT PALESTINE", "price": 25, "size": "M", "quantity": 1}], "count": 1, "total": 25}
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	resp, err := c.service.Get(r.Context(), c.sessionID(w, r))
	if err != nil {
		respondError(w, "GetCart", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddItem handles POST /api/cart/items
// Example request: {"catalogId": 2, "size": "M"}
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AddCatalogItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "AddItem", err)
		return
	}

	resp, err := c.service.AddCatalogItem(r.Context(), c.sessionID(w, r), &req)
	if err != nil {
		respondError(w, "AddItem", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddCustomItem handles POST /api/cart/custom
// Example request:
// {
//   "garmentType": "tshirt", "size": "M", "technique": "embroidery",
//   "front": {"sourceImage": "data:image/png;base64,...", "transform": {"normalizedX": 0.5, "normalizedY": 0.25, "scale": 1, "rotationDegrees": 0}}
// }
func (c *CartController) AddCustomItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddCustomItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AddCustomItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "AddCustomItem", err)
		return
	}

	resp, err := c.service.AddCustomItem(r.Context(), c.sessionID(w, r), &req)
	if err != nil {
		respondError(w, "AddCustomItem", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RemoveItem handles DELETE /api/cart/items/{lineId}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineID := mux.Vars(r)["lineId"]
	resp, err := c.service.RemoveItem(r.Context(), c.sessionID(w, r), lineID)
	if err != nil {
		respondError(w, "RemoveItem", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ClearCart handles DELETE /api/cart
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Clear(r.Context(), c.sessionID(w, r)); err != nil {
		respondError(w, "ClearCart", err)
		return
	}
	respondSuccess(w)
}
