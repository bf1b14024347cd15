package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Mailer   ServiceConfig
	Pricing  PricingConfig
	Session  SessionConfig
	Site     SiteConfig
	Features FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers          []string
	OrdersTopic      string
	FulfillmentTopic string
	ConsumerGroup    string
}

type ServiceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// PricingConfig holds the order pricing constants. VAT and the flat
// shipping fee are fixed platform-wide; there is no per-region schedule.
type PricingConfig struct {
	TaxRate     float64
	ShippingFee float64
}

type SessionConfig struct {
	CookieName  string
	Secret      string
	MaxAge      time.Duration
	RememberAge time.Duration
}

type SiteConfig struct {
	Name       string
	Email      string
	AdminEmail string
	Currency   string
	Country    string
}

type FeatureFlags struct {
	EnableOrderEvents   bool
	EnableMarketCaching bool
	EnableMailDispatch  bool
}

func Load() *Config {
	// Missing .env is fine; env vars and defaults still apply.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "agrihub"),
			Password:     getEnvString("DB_PASSWORD", "agrihub"),
			Name:         getEnvString("DB_NAME", "agrisolutions"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:          []string{getEnvString("KAFKA_BROKER", "localhost:9092")},
			OrdersTopic:      getEnvString("KAFKA_ORDERS_TOPIC", "agrihub.orders"),
			FulfillmentTopic: getEnvString("KAFKA_FULFILLMENT_TOPIC", "agrihub.fulfillment"),
			ConsumerGroup:    getEnvString("KAFKA_CONSUMER_GROUP", "agrisolutions-api"),
		},
		Mailer: ServiceConfig{
			BaseURL: getEnvString("MAILER_URL", "http://localhost:8085"),
			APIKey:  getEnvString("MAILER_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("MAILER_TIMEOUT", 10)) * time.Second,
		},
		Pricing: PricingConfig{
			TaxRate:     getEnvFloat("PRICING_TAX_RATE", 0.18),
			ShippingFee: getEnvFloat("PRICING_SHIPPING_FEE", 15000),
		},
		Session: SessionConfig{
			CookieName:  getEnvString("SESSION_COOKIE", "agrihub_session"),
			Secret:      getEnvString("SESSION_SECRET", "change-me-in-production"),
			MaxAge:      time.Duration(getEnvInt("SESSION_MAX_AGE", 86400)) * time.Second,
			RememberAge: time.Duration(getEnvInt("SESSION_REMEMBER_AGE", 30*24*3600)) * time.Second,
		},
		Site: SiteConfig{
			Name:       getEnvString("SITE_NAME", "AgriSolutions Hub"),
			Email:      getEnvString("SITE_EMAIL", "info@agrisolutionshub.com"),
			AdminEmail: getEnvString("ADMIN_EMAIL", "admin@agrisolutionshub.com"),
			Currency:   getEnvString("SITE_CURRENCY", "TZS"),
			Country:    getEnvString("SITE_COUNTRY", "Tanzania"),
		},
		Features: FeatureFlags{
			EnableOrderEvents:   getEnvBool("FEATURE_ORDER_EVENTS", true),
			EnableMarketCaching: getEnvBool("FEATURE_MARKET_CACHING", true),
			EnableMailDispatch:  getEnvBool("FEATURE_MAIL_DISPATCH", false),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
