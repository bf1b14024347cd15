package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// PostgresUserRepository persists user accounts.
type PostgresUserRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewPostgresUserRepository creates a PostgreSQL-backed user repository.
func NewPostgresUserRepository(db *sql.DB, logger *logging.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, logger: logger}
}

// Create inserts a new account and returns it with its assigned id.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.Status = models.UserStatusActive
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (name, email, phone, country, password, user_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.Country,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		r.logger.Error("Failed to create user", logging.Fields{
			"email": user.Email,
			"error": err.Error(),
		})
		return nil, apperrors.NewPersistenceError("insert user", err)
	}

	r.logger.Info("User created", logging.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

// GetByEmail retrieves an account by email address.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, country, password, user_type, status,
		       remember_token, token_expiry, last_login, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves an account by id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, country, password, user_type, status,
		       remember_token, token_expiry, last_login, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// EmailExists reports whether an account already uses the email.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

// UpdateLastLogin records a successful login time.
func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`,
		id, time.Now(),
	)
	return err
}

// SetRememberToken stores a persistent login token and its expiry.
func (r *PostgresUserRepository) SetRememberToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET remember_token = $2, token_expiry = $3 WHERE id = $1`,
		id, token, expiry,
	)
	return err
}

// GetByRememberToken resolves an unexpired remember token to its account.
func (r *PostgresUserRepository) GetByRememberToken(ctx context.Context, token string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, country, password, user_type, status,
		       remember_token, token_expiry, last_login, created_at
		FROM users
		WHERE remember_token = $1 AND token_expiry > $2
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, token, time.Now()))
}

// SetStatus activates or deactivates an account. Accounts are never
// hard-deleted.
func (r *PostgresUserRepository) SetStatus(ctx context.Context, id int64, status models.UserStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountUsers returns the total number of accounts.
func (r *PostgresUserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *PostgresUserRepository) scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var rememberToken sql.NullString
	var tokenExpiry, lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Country,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&rememberToken,
		&tokenExpiry,
		&lastLogin,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if rememberToken.Valid {
		user.RememberToken = rememberToken.String
	}
	if tokenExpiry.Valid {
		user.TokenExpiry = &tokenExpiry.Time
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return &user, nil
}
