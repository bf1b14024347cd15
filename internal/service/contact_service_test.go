package service

import (
	"context"
	"strings"
	"testing"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

type stubContactRepo struct {
	messages    []*models.ContactMessage
	subscribers []string
}

func (s *stubContactRepo) CreateMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	msg.ID = int64(len(s.messages) + 1)
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *stubContactRepo) Subscribe(ctx context.Context, email, name string) error {
	s.subscribers = append(s.subscribers, email)
	return nil
}

func validContactRequest() *models.ContactRequest {
	return &models.ContactRequest{
		Name:    "Amina Hassan",
		Email:   "amina@example.com",
		Subject: "Market prices for maize",
		Message: "What is the current maize price in Morogoro?",
	}
}

func TestSubmitContactMessage(t *testing.T) {
	repo := &stubContactRepo{}
	events := &stubPublisher{}
	svc := NewContactService(repo, &stubMailer{}, events, &stubActivity{}, testConfig())

	msg, err := svc.Submit(context.Background(), validContactRequest(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if msg.ID == 0 {
		t.Error("Expected message to be assigned an id")
	}
	if msg.Category != models.CategoryMarket {
		t.Errorf("Expected market category, got %s", msg.Category)
	}
	if len(repo.subscribers) != 0 {
		t.Errorf("Expected no subscription without opt-in, got %v", repo.subscribers)
	}
	if events.contactEvents != 1 {
		t.Errorf("Expected 1 contact event, got %d", events.contactEvents)
	}
}

func TestSubmitContactWithNewsletterOptIn(t *testing.T) {
	repo := &stubContactRepo{}
	svc := NewContactService(repo, &stubMailer{}, &stubPublisher{}, &stubActivity{}, testConfig())

	req := validContactRequest()
	req.Newsletter = true

	if _, err := svc.Submit(context.Background(), req, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(repo.subscribers) != 1 || repo.subscribers[0] != "amina@example.com" {
		t.Errorf("Expected subscription for amina@example.com, got %v", repo.subscribers)
	}
}

func TestSubmitContactSanitizesFields(t *testing.T) {
	repo := &stubContactRepo{}
	svc := NewContactService(repo, &stubMailer{}, &stubPublisher{}, &stubActivity{}, testConfig())

	req := validContactRequest()
	req.Subject = "<b>Market</b> question"
	req.Message = "Is the price <script>alert(1)</script> accurate today?"

	msg, err := svc.Submit(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if strings.Contains(msg.Subject, "<") || strings.Contains(msg.Message, "<") {
		t.Errorf("Expected markup to be escaped, got %q / %q", msg.Subject, msg.Message)
	}
	// Category detection still sees the keyword through the markup.
	if msg.Category != models.CategoryMarket {
		t.Errorf("Expected market category, got %s", msg.Category)
	}
}

func TestSubmitContactValidation(t *testing.T) {
	svc := NewContactService(&stubContactRepo{}, &stubMailer{}, &stubPublisher{}, &stubActivity{}, testConfig())

	_, err := svc.Submit(context.Background(), &models.ContactRequest{Message: "hi"}, nil)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if !apperrors.IsValidation(err) {
		t.Fatalf("Expected validation error, got %T", err)
	}
	for _, want := range []string{"Name is required", "Email is required", "Subject is required", "Message is too short"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %q", want, err.Error())
		}
	}
}
