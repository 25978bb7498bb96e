package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koon7r-storefront/config"
	"koon7r-storefront/db"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "development",
		Port:           "8080",
		AdminEmail:     "owner@koon7r.com",
		AdminPassword:  "secret-password",
		TelegramAPIURL: "https://api.telegram.org",
		CanvasSize:     100,
		DesignArchive:  "none",
		LogLevel:       "error",
	}
}

// newTestServer wires the full application without a database and returns a client with a cookie jar
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	previous := db.DB
	t.Cleanup(func() { db.DB = previous })

	a, err := Initialize(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

func TestPing(t *testing.T) {
	srv, client := newTestServer(t)

	resp, payload := doJSON(t, client, http.MethodGet, srv.URL+"/ping", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", payload["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, client := newTestServer(t)
	doJSON(t, client, http.MethodGet, srv.URL+"/ping", "")

	resp, err := client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalogEndpoints(t *testing.T) {
	srv, client := newTestServer(t)

	resp, payload := doJSON(t, client, http.MethodGet, srv.URL+"/api/products?category=hoodie", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "USD", payload["currency"])
	products, ok := payload["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, 2)

	resp, payload = doJSON(t, client, http.MethodGet, srv.URL+"/api/custom/prices", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "USD", payload["currency"])
}

func TestCreateOrderMissingPhone(t *testing.T) {
	srv, client := newTestServer(t)

	body := `{"customerName":"Lina","customerAddress":"Ramallah","items":[{"id":"2","name":"T-SHIRT PALESTINE","price":1,"size":"M","quantity":1}]}`
	resp, payload := doJSON(t, client, http.MethodPost, srv.URL+"/api/orders", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, payload["error"], "customerPhone")
}

func TestCreateOrderWithoutDatabase(t *testing.T) {
	srv, client := newTestServer(t)

	body := `{"customerName":"Lina","customerPhone":"+970","customerAddress":"Ramallah","items":[{"id":"2","name":"T-SHIRT PALESTINE","price":25,"size":"M","quantity":1}]}`
	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/orders", body)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCreateOrderMalformedBody(t *testing.T) {
	srv, client := newTestServer(t)

	resp, payload := doJSON(t, client, http.MethodPost, srv.URL+"/api/orders", `{"customerName":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, payload["error"])
}

func TestCartFlow(t *testing.T) {
	srv, client := newTestServer(t)

	resp, payload := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items", `{"catalogId":2,"size":"m"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["count"])

	doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items", `{"catalogId":2,"size":"M"}`)

	resp, payload = doJSON(t, client, http.MethodGet, srv.URL+"/api/cart", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), payload["count"])
	assert.Equal(t, float64(50), payload["total"])

	items, ok := payload["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	lineID := items[0].(map[string]any)["lineId"].(string)

	resp, payload = doJSON(t, client, http.MethodDelete, srv.URL+"/api/cart/items/"+lineID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), payload["count"])
}

func TestCartIsPerSession(t *testing.T) {
	srv, client := newTestServer(t)
	doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items", `{"catalogId":1,"size":"L"}`)

	other := &http.Client{}
	resp, payload := doJSON(t, other, http.MethodGet, srv.URL+"/api/cart", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), payload["count"])
}

func TestAdminRequiresSession(t *testing.T) {
	srv, client := newTestServer(t)

	resp, payload := doJSON(t, client, http.MethodGet, srv.URL+"/api/admin/orders", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.NotEmpty(t, payload["error"])

	resp, _ = doJSON(t, client, http.MethodPut, srv.URL+"/api/admin/settings/siteName", `{"value":"x"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminLoginFlow(t *testing.T) {
	srv, client := newTestServer(t)

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/admin-login",
		`{"email":"owner@koon7r.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, payload := doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/admin-login",
		`{"email":"OWNER@koon7r.com ","password":"secret-password"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])

	resp, payload = doJSON(t, client, http.MethodGet, srv.URL+"/api/auth/me", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", payload["role"])

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/admin/orders", nil)
	require.NoError(t, err)
	listResp, err := client.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var orders []any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&orders))
	assert.Empty(t, orders)

	resp, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/auth/logout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, client, http.MethodGet, srv.URL+"/api/admin/orders", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMeWithoutSession(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/api/auth/me")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body)
}

func TestInitializeRejectsBadAdminHash(t *testing.T) {
	previous := db.DB
	t.Cleanup(func() { db.DB = previous })

	cfg := testConfig()
	cfg.AdminPasswordHash = "not-a-bcrypt-hash"
	_, err := Initialize(context.Background(), cfg)
	assert.Error(t, err)
}

func TestCompositeFallsBackWithoutMockup(t *testing.T) {
	srv, client := newTestServer(t)

	// mockup paths are relative to the repository root, so they do not resolve from this package
	pixel := "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	body := `{"view":"front","sourceImage":"` + pixel + `","transform":{"normalizedX":0.5,"normalizedY":0.5,"scale":1,"rotationDegrees":0}}`
	resp, payload := doJSON(t, client, http.MethodPost, srv.URL+"/api/designs/composite", body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, payload["composited"])
	assert.Equal(t, pixel, payload["image"])
	assert.Equal(t, "front", payload["view"])
}

func TestCompositeRejectsUnknownView(t *testing.T) {
	srv, client := newTestServer(t)

	resp, payload := doJSON(t, client, http.MethodPost, srv.URL+"/api/designs/composite",
		`{"view":"side","sourceImage":"https://example.com/a.png"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, payload["error"])
}

func TestCompositeRejectsServerSideReferences(t *testing.T) {
	srv, client := newTestServer(t)

	for _, ref := range []string{"/etc/passwd", "file:///etc/hosts", "http://169.254.169.254/latest/meta-data"} {
		body := `{"view":"front","sourceImage":"` + ref + `"}`
		resp, payload := doJSON(t, client, http.MethodPost, srv.URL+"/api/designs/composite", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, ref)
		assert.Contains(t, payload["error"], "sourceImage", ref)
	}
}
