package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/auth"
	"koon7r-storefront/models"
	"koon7r-storefront/service"
)

// AuthController handles admin sign-in and the session cookie
type AuthController struct {
	service  service.AuthServiceInterface
	sessions *auth.SessionManager
}

// NewAuthController creates a new AuthController
func NewAuthController(svc service.AuthServiceInterface, sessions *auth.SessionManager) *AuthController {
	return &AuthController{service: svc, sessions: sessions}
}

// AdminLogin handles POST /api/auth/admin-login
// Example request: {"email": "owner@koon7r.com", "password": "..."}
// Example response: {"success": true} with the app_session_id cookie set
func (c *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AdminLogin: Received %s request to %s", r.Method, r.URL.Path)

	var req models.AdminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "AdminLogin", err)
		return
	}

	identity, err := c.service.AdminLogin(r.Context(), &req)
	if err != nil {
		respondError(w, "AdminLogin", err)
		return
	}

	if err := c.sessions.SetCookie(w, identity); err != nil {
		respondError(w, "AdminLogin", err)
		return
	}
	respondSuccess(w)
}

// Me handles GET /api/auth/me. Responds with the identity, or null without a session.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, auth.FromContext(r.Context()))
}

// Logout handles POST /api/auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	c.sessions.ClearCookie(w)
	respondSuccess(w)
}
