package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/metrics"
	"koon7r-storefront/models"
	"koon7r-storefront/notify"
	"koon7r-storefront/repository"
	"koon7r-storefront/utils"
)

// MessageService handles contact form submissions
type MessageService struct {
	messages  repository.MessageRepositoryInterface
	notifiers []notify.Notifier
}

// NewMessageService creates a new MessageService
func NewMessageService(messages repository.MessageRepositoryInterface, notifiers []notify.Notifier) *MessageService {
	return &MessageService{messages: messages, notifiers: notifiers}
}

// Ensure MessageService implements MessageServiceInterface
var _ MessageServiceInterface = (*MessageService)(nil)

// Create persists a contact message and notifies the owner
func (s *MessageService) Create(ctx context.Context, req *models.CreateMessageRequest) (*models.ContactMessage, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := utils.ValidateStruct(req); err != nil {
		log.Printf("❌ Create: Invalid message: %v", err)
		return nil, err
	}

	msg := &models.ContactMessage{
		ID:      "msg_" + uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	metrics.RecordMessageCreated()

	followCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
	defer cancel()
	dispatch(followCtx, s.notifiers, notify.MessageNotification(msg))

	return msg, nil
}
