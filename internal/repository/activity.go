package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
)

// PostgresActivityLog appends audit trail entries. Logging is best-effort:
// a failed append is logged and swallowed so it never aborts the operation
// being audited.
type PostgresActivityLog struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewPostgresActivityLog creates a PostgreSQL-backed activity log.
func NewPostgresActivityLog(db *sql.DB, logger *logging.Logger) *PostgresActivityLog {
	return &PostgresActivityLog{db: db, logger: logger}
}

// Record appends one entry tagged with an action name such as
// "order_placed", "login" or "registration".
func (l *PostgresActivityLog) Record(ctx context.Context, userID int64, action, details, ipAddress string) {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO activity_logs (user_id, action, details, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, action, details, ipAddress, time.Now(),
	)
	if err != nil {
		l.logger.Error("Failed to record activity", logging.Fields{
			"user_id": userID,
			"action":  action,
			"error":   err.Error(),
		})
	}
}
