package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Field-level encryption for sensitive columns (bank account numbers)
	EncryptionKey string

	// Message broker for budget alert events; empty disables publishing
	AMQPURL string

	// Product analytics; empty disables tracking
	PosthogAPIKey string

	// Requests per minute per client IP
	RateLimitRPM int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "personal-finance-app")
	viper.SetDefault("ENCRYPTION_KEY", "")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RATE_LIMIT_RPM", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	// Load JWT Secret
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1 // Default to 1 hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	// Load JWT Issuer
	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "personal-finance-app" // Default JWT issuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	cfg.EncryptionKey = viper.GetString("ENCRYPTION_KEY")
	if cfg.EncryptionKey == "" {
		log.Println("Warning: ENCRYPTION_KEY not set. Bank account operations will fail until it is configured.")
	}

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Budget alert events will not be published.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cfg.RateLimitRPM = viper.GetInt("RATE_LIMIT_RPM")
	if cfg.RateLimitRPM <= 0 {
		cfg.RateLimitRPM = 120
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer

	return cfg, nil
}
