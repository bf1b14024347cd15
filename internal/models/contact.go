package models

import "time"

// MessageCategory is the routing bucket for a contact message, inferred
// from the subject line by service.ClassifyMessage.
type MessageCategory string

const (
	CategoryGeneral   MessageCategory = "general"
	CategoryMarket    MessageCategory = "market"
	CategoryTechnical MessageCategory = "technical"
	CategoryExport    MessageCategory = "export"
	CategoryOrder     MessageCategory = "order"
)

// ContactMessage is an append-only contact form submission.
type ContactMessage struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Subject   string          `json:"subject"`
	Message   string          `json:"message"`
	Category  MessageCategory `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewsletterSubscription is an append-only opt-in record, unique per email.
type NewsletterSubscription struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
