package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/models"
	"koon7r-storefront/service"
)

// MessageController handles contact form submissions
type MessageController struct {
	service service.MessageServiceInterface
}

// NewMessageController creates a new MessageController
func NewMessageController(svc service.MessageServiceInterface) *MessageController {
	return &MessageController{service: svc}
}

// CreateMessage handles POST /api/messages
// Example request: {"name": "Omar", "email": "omar@example.com", "message": "Do you ship to Amman?"}
func (c *MessageController) CreateMessage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateMessage: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "CreateMessage", err)
		return
	}

	msg, err := c.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, "CreateMessage", err)
		return
	}

	log.Printf("✅ CreateMessage: Created message %s", msg.ID)
	writeJSON(w, http.StatusCreated, msg)
}
