package service

import (
	"context"
	"fmt"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/metrics"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// ContactService handles contact form submissions and newsletter opt-ins.
type ContactService struct {
	contacts ContactRepository
	mailer   Mailer
	events   EventPublisher
	activity ActivityRecorder
	config   *config.Config
	logger   *logging.Logger
}

// NewContactService creates a contact service.
func NewContactService(
	contacts ContactRepository,
	mailer Mailer,
	events EventPublisher,
	activity ActivityRecorder,
	cfg *config.Config,
) *ContactService {
	return &ContactService{
		contacts: contacts,
		mailer:   mailer,
		events:   events,
		activity: activity,
		config:   cfg,
		logger:   logging.NewLogger("contact-service"),
	}
}

// Submit validates and stores a contact message, categorized by the
// subject-line classifier heuristic. Newsletter opt-in subscribes the
// sender's email unless it already is. Acknowledgement mails are
// fire-and-forget.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest, ident *Identity) (*models.ContactMessage, error) {
	req.Name = SanitizeInput(req.Name)
	req.Email = SanitizeInput(req.Email)
	req.Phone = SanitizeInput(req.Phone)
	req.Subject = SanitizeInput(req.Subject)
	req.Message = SanitizeInput(req.Message)

	if err := ValidateContactRequest(req); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: ClassifyMessage(req.Subject),
	}

	msg, err := s.contacts.CreateMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	metrics.ContactMessages.Inc()

	if req.Newsletter {
		if err := s.contacts.Subscribe(ctx, req.Email, req.Name); err != nil {
			// Subscription is a bonus; the message itself is already stored.
			s.logger.Error("Failed to subscribe to newsletter", logging.Fields{
				"email": req.Email,
				"error": err.Error(),
			})
		}
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.events.PublishContactReceived(ctx, msg); err != nil {
			s.logger.Error("Failed to publish contact event", logging.Fields{
				"message_id": msg.ID,
				"error":      err.Error(),
			})
		}
	}

	if ident != nil {
		s.activity.Record(ctx, ident.UserID, "contact_form",
			"Submitted contact form: "+req.Subject, ident.IP)
	}

	go s.sendAcknowledgements(context.Background(), msg)

	return msg, nil
}

func (s *ContactService) sendAcknowledgements(ctx context.Context, msg *models.ContactMessage) {
	userBody := fmt.Sprintf(
		"Dear %s,\n\nThank you for contacting %s. We have received your message and our team will respond within 24 hours.\n\nMessage Details:\nSubject: %s\nMessage: %s\n\nBest regards,\n%s Team",
		msg.Name, s.config.Site.Name, msg.Subject, msg.Message, s.config.Site.Name)

	if err := s.mailer.Send(ctx, msg.Email, "Thank you for contacting "+s.config.Site.Name, userBody); err != nil {
		s.logger.Error("Failed to send contact acknowledgement", logging.Fields{
			"message_id": msg.ID,
			"error":      err.Error(),
		})
	}

	adminBody := fmt.Sprintf(
		"A new contact message has been received:\n\nFrom: %s\nEmail: %s\nPhone: %s\nSubject: %s\nCategory: %s\nMessage:\n%s\n\nMessage ID: %d",
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Category, msg.Message, msg.ID)

	if err := s.mailer.Send(ctx, s.config.Site.AdminEmail, "New Contact Message: "+msg.Subject, adminBody); err != nil {
		s.logger.Error("Failed to send admin contact alert", logging.Fields{
			"message_id": msg.ID,
			"error":      err.Error(),
		})
	}
}
