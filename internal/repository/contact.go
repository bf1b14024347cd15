package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// PostgresContactRepository persists contact messages and newsletter
// subscriptions. Both tables are append-only.
type PostgresContactRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewPostgresContactRepository creates a PostgreSQL-backed contact repository.
func NewPostgresContactRepository(db *sql.DB, logger *logging.Logger) *PostgresContactRepository {
	return &PostgresContactRepository{db: db, logger: logger}
}

// CreateMessage appends a contact message and returns its id.
func (r *PostgresContactRepository) CreateMessage(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {
	msg.CreatedAt = time.Now()

	query := `
		INSERT INTO contact_messages (name, email, phone, subject, message, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Message,
		msg.Category,
		msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		r.logger.Error("Failed to store contact message", logging.Fields{
			"email": msg.Email,
			"error": err.Error(),
		})
		return nil, apperrors.NewPersistenceError("insert contact message", err)
	}

	return msg, nil
}

// Subscribe adds a newsletter subscription unless the email is already
// subscribed. Duplicate opt-ins are silently ignored.
func (r *PostgresContactRepository) Subscribe(ctx context.Context, email, name string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM newsletter_subscriptions WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscriptions (email, name, subscribed_at) VALUES ($1, $2, $3)`,
		email, name, time.Now(),
	)
	return err
}
