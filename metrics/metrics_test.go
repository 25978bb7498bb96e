package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandlerUsesRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(InstrumentHandler)
	router.HandleFunc("/api/admin/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/admin/orders/{id}", "404"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders/order_1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/admin/orders/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(notificationFailures.WithLabelValues("telegram"))
	RecordNotificationFailure("telegram")
	assert.Equal(t, before+1, testutil.ToFloat64(notificationFailures.WithLabelValues("telegram")))

	fallbacks := testutil.ToFloat64(composites.WithLabelValues("front", "fallback"))
	RecordComposite("front", true, 20*time.Millisecond)
	assert.Equal(t, fallbacks+1, testutil.ToFloat64(composites.WithLabelValues("front", "fallback")))

	orders := testutil.ToFloat64(ordersCreated)
	RecordOrderCreated()
	assert.Equal(t, orders+1, testutil.ToFloat64(ordersCreated))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordMessageCreated()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "koon7r_messages_created_total")
}
