package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/payrecon/internal/pkg/constants"
	"github.com/piresc/payrecon/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// InitConfig loads configuration from the environment. In local mode the
// file at configPath is loaded into the environment first.
func InitConfig(configPath string) *models.Config {
	v := newViper()
	if v.GetString("APP_ENV") == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_NAME", "payrecon")
	v.SetDefault("APP_DEBUG", true)

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 9990)
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 15)

	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 5)

	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NATS_SUBJECT", constants.SubjectPaymentReconciled)
	v.SetDefault("NSQ_NOTIFICATION_TOPIC", constants.TopicPaymentNotifications)
	v.SetDefault("NSQ_MAILER_CHANNEL", constants.ChannelMailer)

	v.SetDefault("JWT_EXPIRATION", 60)

	v.SetDefault("GATEWAY_PROVIDER", "billplz")
	v.SetDefault("GATEWAY_TIMEOUT", 5*time.Second)
	v.SetDefault("GATEWAY_MAX_RETRIES", 2)
	v.SetDefault("GATEWAY_BASE_BACKOFF", 200*time.Millisecond)
	v.SetDefault("GATEWAY_MAX_BACKOFF", 2*time.Second)

	v.SetDefault("WEBHOOK_SECRET_HEADER", "X-Webhook-Secret")
	v.SetDefault("WEBHOOK_GUARD_TTL", 10*time.Minute)

	v.SetDefault("PRICING_CURRENCY", "MYR")
	v.SetDefault("PRICING_AI_CREDIT_UNIT_PRICE", "0.50")
	v.SetDefault("PRICING_RECRUITER_CV_CREDIT_PRICE", "2.00")
	v.SetDefault("PRICING_STARTER_MONTHLY", "19.00")
	v.SetDefault("PRICING_PRO_MONTHLY", "39.00")
	v.SetDefault("PRICING_GROWTH_MONTHLY", "99.00")
	v.SetDefault("PRICING_YEARLY_DISCOUNT_MONTHS", 2)
	v.SetDefault("PRICING_GROWTH_BUNDLE_CREDITS", 20)
	v.SetDefault("PRICING_GROWTH_BUNDLE_CREDIT_KIND", string(models.CreditKindRecruiterCV))

	v.SetDefault("VERIFY_RATE_LIMIT", 10)
	v.SetDefault("VERIFY_RATE_PERIOD", time.Minute)

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_GIFT_CLAIM_URL", "https://app.payrecon.io/gifts/claim")

	v.SetDefault("NEW_RELIC_ENABLED", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "logs/payrecon.log")
	v.SetDefault("LOG_TYPE", "stdout")
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// Messaging config
	configs.NATS.URL = v.GetString("NATS_URL")
	configs.NATS.Subject = v.GetString("NATS_SUBJECT")
	configs.NSQ.Address = v.GetString("NSQ_ADDRESS")
	configs.NSQ.NotificationTopic = v.GetString("NSQ_NOTIFICATION_TOPIC")
	configs.NSQ.MailerChannel = v.GetString("NSQ_MAILER_CHANNEL")

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	// Gateway config
	configs.Gateway.Provider = v.GetString("GATEWAY_PROVIDER")
	configs.Gateway.BaseURL = strings.TrimRight(v.GetString("GATEWAY_BASE_URL"), "/")
	configs.Gateway.APIKey = v.GetString("GATEWAY_API_KEY")
	configs.Gateway.Timeout = v.GetDuration("GATEWAY_TIMEOUT")
	configs.Gateway.MaxRetries = v.GetInt("GATEWAY_MAX_RETRIES")
	configs.Gateway.BaseBackoff = v.GetDuration("GATEWAY_BASE_BACKOFF")
	configs.Gateway.MaxBackoff = v.GetDuration("GATEWAY_MAX_BACKOFF")
	configs.Gateway.CallbackURL = v.GetString("GATEWAY_CALLBACK_URL")
	configs.Gateway.RedirectURL = v.GetString("GATEWAY_REDIRECT_URL")

	// Webhook config
	configs.Webhook.SecretHeader = v.GetString("WEBHOOK_SECRET_HEADER")
	configs.Webhook.Secret = v.GetString("WEBHOOK_SECRET")
	configs.Webhook.GuardTTL = v.GetDuration("WEBHOOK_GUARD_TTL")

	// Pricing catalog
	configs.Pricing.Currency = v.GetString("PRICING_CURRENCY")
	configs.Pricing.AICreditUnitPrice = getDecimal(v, "PRICING_AI_CREDIT_UNIT_PRICE")
	configs.Pricing.RecruiterCVCreditPrice = getDecimal(v, "PRICING_RECRUITER_CV_CREDIT_PRICE")
	configs.Pricing.PlanMonthlyPrices = map[models.Plan]decimal.Decimal{
		models.PlanStarter: getDecimal(v, "PRICING_STARTER_MONTHLY"),
		models.PlanPro:     getDecimal(v, "PRICING_PRO_MONTHLY"),
		models.PlanGrowth:  getDecimal(v, "PRICING_GROWTH_MONTHLY"),
	}
	configs.Pricing.YearlyDiscountMonths = v.GetInt("PRICING_YEARLY_DISCOUNT_MONTHS")
	configs.Pricing.GrowthBundleCredits = v.GetInt("PRICING_GROWTH_BUNDLE_CREDITS")
	configs.Pricing.GrowthBundleCreditKind = models.CreditKind(strings.ToUpper(v.GetString("PRICING_GROWTH_BUNDLE_CREDIT_KIND")))

	// Verification rate limit
	configs.Verify.RateLimit = v.GetInt("VERIFY_RATE_LIMIT")
	configs.Verify.RatePeriod = v.GetDuration("VERIFY_RATE_PERIOD")

	// SMTP config
	configs.SMTP.Host = v.GetString("SMTP_HOST")
	configs.SMTP.Port = v.GetInt("SMTP_PORT")
	configs.SMTP.Username = v.GetString("SMTP_USERNAME")
	configs.SMTP.Password = v.GetString("SMTP_PASSWORD")
	configs.SMTP.FromEmail = v.GetString("SMTP_FROM_EMAIL")
	configs.SMTP.GiftClaimURL = v.GetString("SMTP_GIFT_CLAIM_URL")

	// NewRelic config
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.LogsEnabled = v.GetBool("NEW_RELIC_LOGS_ENABLED")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")
	configs.Logger.Type = v.GetString("LOG_TYPE")

	return configs
}

func getDecimal(v *viper.Viper, key string) decimal.Decimal {
	raw := v.GetString(key)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: Invalid decimal value %q for %s, using zero", raw, key)
		return decimal.Zero
	}
	return value
}
