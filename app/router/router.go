package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"koon7r-storefront/app/controller"
	"koon7r-storefront/app/middleware"
	"koon7r-storefront/auth"
	"koon7r-storefront/metrics"
)

// Controllers holds the handlers the router mounts
type Controllers struct {
	Catalog *controller.CatalogController
	Design  *controller.DesignController
	Cart    *controller.CartController
	Order   *controller.OrderController
	Message *controller.MessageController
	Admin   *controller.AdminController
	Auth    *controller.AuthController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the API router. limiter guards the public create endpoints and may be nil.
func SetupRoutes(controllers *Controllers, sessions *auth.SessionManager, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.Session(sessions))

	limited := func(h http.HandlerFunc) http.Handler {
		if limiter == nil {
			return h
		}
		return limiter.Handler(h)
	}

	// Ping endpoint
	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Catalog
	api.HandleFunc("/products", controllers.Catalog.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/custom/prices", controllers.Catalog.CustomPrices).Methods(http.MethodGet)

	// Design studio
	api.Handle("/designs/composite", limited(controllers.Design.Composite)).Methods(http.MethodPost)

	// Session cart
	api.HandleFunc("/cart", controllers.Cart.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", controllers.Cart.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", controllers.Cart.AddItem).Methods(http.MethodPost)
	api.Handle("/cart/custom", limited(controllers.Cart.AddCustomItem)).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{lineId}", controllers.Cart.RemoveItem).Methods(http.MethodDelete)

	// Public submissions
	api.Handle("/orders", limited(controllers.Order.CreateOrder)).Methods(http.MethodPost)
	api.Handle("/messages", limited(controllers.Message.CreateMessage)).Methods(http.MethodPost)

	// Auth
	api.Handle("/auth/admin-login", limited(controllers.Auth.AdminLogin)).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", controllers.Auth.Me).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", controllers.Auth.Logout).Methods(http.MethodPost)

	// Admin orders
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/orders", controllers.Admin.ListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", controllers.Admin.GetOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", controllers.Admin.DeleteOrder).Methods(http.MethodDelete)
	admin.HandleFunc("/orders/{id}/status", controllers.Admin.UpdateOrderStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{id}/sheet", controllers.Admin.OrderSheet).Methods(http.MethodGet)

	// Admin messages
	admin.HandleFunc("/messages", controllers.Admin.ListMessages).Methods(http.MethodGet)
	admin.HandleFunc("/messages/{id}/read", controllers.Admin.MarkMessageRead).Methods(http.MethodPost)

	// Admin settings
	admin.HandleFunc("/settings", controllers.Admin.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings/{key}", controllers.Admin.UpdateSetting).Methods(http.MethodPut)

	return r
}
