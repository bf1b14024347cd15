package service

import (
	"context"
	"time"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// OrderRepository is the persistence contract the order service depends on.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	GetByUserID(ctx context.Context, userID int64, limit int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

// UserRepository is the persistence contract the auth service depends on.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByRememberToken(ctx context.Context, token string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	SetRememberToken(ctx context.Context, id int64, token string, expiry time.Time) error
}

// ContactRepository is the persistence contract the contact service depends on.
type ContactRepository interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error)
	Subscribe(ctx context.Context, email, name string) error
}

// Mailer composes and dispatches outbound messages. Delivery is
// fire-and-forget; callers ignore failures.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EventPublisher emits domain events to the message bus.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *models.Order) error
	PublishUserRegistered(ctx context.Context, user *models.User) error
	PublishContactReceived(ctx context.Context, msg *models.ContactMessage) error
}

// ActivityRecorder appends audit trail entries, best-effort.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int64, action, details, ipAddress string)
}
