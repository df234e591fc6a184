package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// SWIFT gateway settings. When SwiftAPIURL or SwiftAPIKey is empty the
	// application falls back to the sandbox transport.
	SwiftAPIURL          string
	SwiftAPIKey          string
	SwiftSenderBIC       string
	SwiftInstitutionName string
	SwiftHTTPTimeout     time.Duration

	// BaseCurrency is the pivot for cross-rate resolution.
	BaseCurrency string

	// GoldPriceUSD seeds the gold-pegged token's rate. Zero disables that
	// seed pair.
	GoldPriceUSD decimal.Decimal

	// RateLimit uses the limiter formatted syntax, e.g. "100-M" for 100
	// requests per minute per client IP.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SWIFT_API_URL", "")
	viper.SetDefault("SWIFT_API_KEY", "")
	viper.SetDefault("SWIFT_SENDER_BIC", "NVCGGLOBALXXX")
	viper.SetDefault("SWIFT_INSTITUTION_NAME", "NVC Global Bank")
	viper.SetDefault("SWIFT_HTTP_TIMEOUT", "30s")
	viper.SetDefault("BASE_CURRENCY", "NVCT")
	viper.SetDefault("GOLD_PRICE_USD", "0")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.SwiftAPIURL = viper.GetString("SWIFT_API_URL")
	cfg.SwiftAPIKey = viper.GetString("SWIFT_API_KEY")
	cfg.SwiftSenderBIC = viper.GetString("SWIFT_SENDER_BIC")
	cfg.SwiftInstitutionName = viper.GetString("SWIFT_INSTITUTION_NAME")

	timeoutStr := viper.GetString("SWIFT_HTTP_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		log.Printf("Warning: Invalid value for SWIFT_HTTP_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
	}
	cfg.SwiftHTTPTimeout = timeout

	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")

	goldPriceStr := viper.GetString("GOLD_PRICE_USD")
	goldPrice, err := decimal.NewFromString(goldPriceStr)
	if err != nil {
		goldPrice = decimal.Zero
		log.Printf("Warning: Invalid value for GOLD_PRICE_USD ('%s'). Gold-derived seeding disabled.\n", goldPriceStr)
	}
	cfg.GoldPriceUSD = goldPrice

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
