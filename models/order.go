package models

import "time"

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every accepted status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is one of OrderStatuses
func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order represents an order in the database. Items are stored as a JSON array.
type Order struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId,omitempty"`
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail,omitempty"`
	CustomerPhone   string         `json:"customerPhone"`
	CustomerAddress string         `json:"customerAddress"`
	Items           []CartLineItem `json:"items"`
	TotalAmount     int64          `json:"totalAmount"`
	Status          OrderStatus    `json:"status"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// CreateOrderRequest represents the request body for POST /api/orders
// Example:
// {
//   "customerName": "Lina",
//   "customerEmail": "lina@example.com",
//   "customerPhone": "+970591234567",
//   "customerAddress": "Ramallah, Main St 4",
//   "items": [{"id": "1", "name": "HOODIE NAKBA", "price": 45, "size": "L", "image": "/products/NAKBA-BACK.png", "quantity": 1}],
//   "notes": "Gift wrap"
// }
type CreateOrderRequest struct {
	CustomerName    string         `json:"customerName"`
	CustomerEmail   string         `json:"customerEmail,omitempty"`
	CustomerPhone   string         `json:"customerPhone"`
	CustomerAddress string         `json:"customerAddress"`
	Items           []CartLineItem `json:"items"`
	Notes           string         `json:"notes,omitempty"`
	UserID          string         `json:"-"`
}

// UpdateOrderStatusRequest represents the request body for PATCH /api/admin/orders/{id}/status
// Example: {"status": "shipped"}
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// SuccessResponse is the {success: true} acknowledgement returned by mutations
type SuccessResponse struct {
	Success bool `json:"success"`
}

// OrderDetail is an order with the archived designs of its custom lines
type OrderDetail struct {
	Order
	Designs []CustomDesign `json:"designs"`
}
