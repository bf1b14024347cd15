package repository

import (
	"context"
	"database/sql"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// PostgresMarketRepository reads commodity price listings.
type PostgresMarketRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewPostgresMarketRepository creates a PostgreSQL-backed market repository.
func NewPostgresMarketRepository(db *sql.DB, logger *logging.Logger) *PostgresMarketRepository {
	return &PostgresMarketRepository{db: db, logger: logger}
}

// LatestPrices returns the most recently updated price rows.
func (r *PostgresMarketRepository) LatestPrices(ctx context.Context, limit int) ([]models.MarketPrice, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, commodity, market, price, unit, updated_at
		FROM market_prices
		ORDER BY updated_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make([]models.MarketPrice, 0, limit)
	for rows.Next() {
		var p models.MarketPrice
		if err := rows.Scan(&p.ID, &p.Commodity, &p.Market, &p.Price, &p.Unit, &p.UpdatedAt); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}

// CountCommodities returns the number of distinct commodities listed.
func (r *PostgresMarketRepository) CountCommodities(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT commodity) FROM market_prices`,
	).Scan(&count)
	return count, err
}

// CountResources returns the number of published resources.
func (r *PostgresMarketRepository) CountResources(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count)
	return count, err
}
