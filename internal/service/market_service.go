package service

import (
	"context"
	"math/rand"
	"strings"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// MarketRepository is the persistence contract the market service depends on.
type MarketRepository interface {
	LatestPrices(ctx context.Context, limit int) ([]models.MarketPrice, error)
	CountCommodities(ctx context.Context) (int, error)
	CountResources(ctx context.Context) (int, error)
}

// MarketCache caches price listings. Nil results mean a miss.
type MarketCache interface {
	GetPrices(ctx context.Context) ([]models.MarketPrice, error)
	SetPrices(ctx context.Context, prices []models.MarketPrice) error
}

// Counter exposes the record counts used by the statistics endpoint.
type Counter interface {
	CountUsers(ctx context.Context) (int, error)
}

// OrderCounter exposes the order count used by the statistics endpoint.
type OrderCounter interface {
	CountOrders(ctx context.Context) (int, error)
}

// MarketService serves price listings, simulated weather, statistics and
// the static export opportunity catalogue.
type MarketService struct {
	market MarketRepository
	cache  MarketCache
	users  Counter
	orders OrderCounter
	config *config.Config
	logger *logging.Logger
}

// NewMarketService creates a market service.
func NewMarketService(
	market MarketRepository,
	cache MarketCache,
	users Counter,
	orders OrderCounter,
	cfg *config.Config,
) *MarketService {
	return &MarketService{
		market: market,
		cache:  cache,
		users:  users,
		orders: orders,
		config: cfg,
		logger: logging.NewLogger("market-service"),
	}
}

// LatestPrices returns the ten freshest price rows, served from cache when
// possible. Cache failures fall through to the database.
func (s *MarketService) LatestPrices(ctx context.Context) ([]models.MarketPrice, error) {
	if s.config.Features.EnableMarketCaching {
		if prices, err := s.cache.GetPrices(ctx); err == nil && prices != nil {
			return prices, nil
		}
	}

	prices, err := s.market.LatestPrices(ctx, 10)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableMarketCaching {
		if err := s.cache.SetPrices(ctx, prices); err != nil {
			s.logger.Error("Failed to cache market prices", logging.Fields{"error": err.Error()})
		}
	}

	return prices, nil
}

// weatherProfile bounds the simulated readings per location.
type weatherProfile struct {
	tempMin, tempMax         int
	condition                string
	humidityMin, humidityMax int
	windMin, windMax         int
}

// Simulated conditions per supported location. Real meteorological data is
// outside the platform; the widget only needs plausible readings.
var weatherProfiles = map[string]weatherProfile{
	"morogoro": {25, 32, "Partly Cloudy", 60, 80, 5, 15},
	"dar":      {28, 35, "Sunny", 70, 90, 10, 20},
	"arusha":   {18, 25, "Cloudy", 50, 70, 5, 12},
}

// Weather returns a simulated reading for the location. Unknown locations
// fall back to morogoro.
func (s *MarketService) Weather(location string) models.WeatherReport {
	key := strings.ToLower(strings.TrimSpace(location))
	profile, ok := weatherProfiles[key]
	if !ok {
		key = "morogoro"
		profile = weatherProfiles[key]
	}

	return models.WeatherReport{
		Location:    key,
		Temperature: randBetween(profile.tempMin, profile.tempMax),
		Condition:   profile.condition,
		Humidity:    randBetween(profile.humidityMin, profile.humidityMax),
		WindSpeed:   randBetween(profile.windMin, profile.windMax),
	}
}

// Statistics aggregates the landing page counters. Individual count
// failures zero that counter rather than failing the whole response.
func (s *MarketService) Statistics(ctx context.Context) models.Statistics {
	var stats models.Statistics

	if n, err := s.users.CountUsers(ctx); err == nil {
		stats.TotalUsers = n
	}
	if n, err := s.orders.CountOrders(ctx); err == nil {
		stats.TotalOrders = n
	}
	if n, err := s.market.CountCommodities(ctx); err == nil {
		stats.TotalProducts = n
	}
	if n, err := s.market.CountResources(ctx); err == nil {
		stats.TotalResources = n
	}

	return stats
}

// Opportunities returns the static export-market catalogue.
func (s *MarketService) Opportunities() []models.Opportunity {
	return []models.Opportunity{
		{
			Region:       "European Union",
			Products:     []string{"Organic Coffee", "Tea", "Spices", "Cashew Nuts"},
			Requirements: "Organic certification, EU standards",
		},
		{
			Region:       "Asian Markets",
			Products:     []string{"Sesame Seeds", "Cashew Nuts", "Beans", "Seaweed"},
			Requirements: "Quality certification, Proper packaging",
		},
		{
			Region:       "American Markets",
			Products:     []string{"Specialty Coffee", "Cocoa", "Vanilla", "Shea Butter"},
			Requirements: "FDA approval, Fair trade certification",
		},
	}
}

func randBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}
