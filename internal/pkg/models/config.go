package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Webhook  WebhookConfig
	Pricing  PricingConfig
	Verify   VerifyConfig
	SMTP     SMTPConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL     string
	Subject string
}

// NSQConfig contains NSQ connection configuration
type NSQConfig struct {
	Address           string
	NotificationTopic string
	MailerChannel     string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// GatewayConfig describes the external payment gateway
type GatewayConfig struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	CallbackURL string
	RedirectURL string
}

// WebhookConfig holds the shared secret the gateway presents on every delivery
type WebhookConfig struct {
	SecretHeader string
	Secret       string
	GuardTTL     time.Duration
}

// PricingConfig is the price catalog used at checkout and when converting paid amounts to credits
type PricingConfig struct {
	Currency               string
	AICreditUnitPrice      decimal.Decimal
	RecruiterCVCreditPrice decimal.Decimal
	PlanMonthlyPrices      map[Plan]decimal.Decimal
	YearlyDiscountMonths   int
	GrowthBundleCredits    int
	GrowthBundleCreditKind CreditKind
}

// VerifyConfig limits how often a user may trigger a gateway status check
type VerifyConfig struct {
	RateLimit  int
	RatePeriod time.Duration
}

// SMTPConfig is used by the mailer worker
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password     string
	FromEmail    string
	GiftClaimURL string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}
