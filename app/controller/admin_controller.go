package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/auth"
	"koon7r-storefront/models"
	"koon7r-storefront/service"
)

// AdminController handles the admin surface: orders, messages, settings and work sheets.
// The caller identity comes from the session middleware; the service enforces the admin role.
type AdminController struct {
	service service.AdminServiceInterface
	sheets  service.OrderSheetServiceInterface
}

// NewAdminController creates a new AdminController
func NewAdminController(svc service.AdminServiceInterface, sheets service.OrderSheetServiceInterface) *AdminController {
	return &AdminController{service: svc, sheets: sheets}
}

// ListOrders handles GET /api/admin/orders
func (c *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListOrders: Received %s request to %s", r.Method, r.URL.Path)

	orders, err := c.service.ListOrders(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respondError(w, "ListOrders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/admin/orders/{id}
func (c *AdminController) GetOrder(w http.ResponseWriter, r *http.Request) {
	detail, err := c.service.GetOrder(r.Context(), auth.FromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, "GetOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateOrderStatus handles PATCH /api/admin/orders/{id}/status
// Example request: {"status": "shipped"}
func (c *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateOrderStatus: Received %s request to %s", r.Method, r.URL.Path)

	var req models.UpdateOrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "UpdateOrderStatus", err)
		return
	}

	id := mux.Vars(r)["id"]
	if err := c.service.UpdateOrderStatus(r.Context(), auth.FromContext(r.Context()), id, req.Status); err != nil {
		respondError(w, "UpdateOrderStatus", err)
		return
	}

	log.Printf("✅ UpdateOrderStatus: Order %s is now %s", id, req.Status)
	respondSuccess(w)
}

// DeleteOrder handles DELETE /api/admin/orders/{id}
func (c *AdminController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.service.DeleteOrder(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		respondError(w, "DeleteOrder", err)
		return
	}

	log.Printf("✅ DeleteOrder: Deleted order %s", id)
	respondSuccess(w)
}

// OrderSheet handles GET /api/admin/orders/{id}/sheet[?format=pdf]
func (c *AdminController) OrderSheet(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 OrderSheet: Received %s request to %s", r.Method, r.URL.Path)

	detail, err := c.service.GetOrder(r.Context(), auth.FromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, "OrderSheet", err)
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		pdf, err := c.sheets.RenderPDF(r.Context(), detail)
		if err != nil {
			respondError(w, "OrderSheet", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, detail.ID))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
		return
	}

	html, err := c.sheets.RenderHTML(r.Context(), detail)
	if err != nil {
		respondError(w, "OrderSheet", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// ListMessages handles GET /api/admin/messages
func (c *AdminController) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := c.service.ListMessages(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respondError(w, "ListMessages", err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// MarkMessageRead handles POST /api/admin/messages/{id}/read
func (c *AdminController) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := c.service.MarkMessageRead(r.Context(), auth.FromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, "MarkMessageRead", err)
		return
	}
	respondSuccess(w)
}

// GetSettings handles GET /api/admin/settings
func (c *AdminController) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.service.GetSettings(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respondError(w, "GetSettings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSetting handles PUT /api/admin/settings/{key}
// Example request: {"value": "info@koon7r.com"}
func (c *AdminController) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateSetting: Received %s request to %s", r.Method, r.URL.Path)

	var req models.UpdateSettingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "UpdateSetting", err)
		return
	}

	settings, err := c.service.UpdateSetting(r.Context(), auth.FromContext(r.Context()), mux.Vars(r)["key"], req.Value)
	if err != nil {
		respondError(w, "UpdateSetting", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
