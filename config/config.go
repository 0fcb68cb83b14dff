package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	ClientURL string // allowed cross-origin frontend URL

	StripeSecretKey string
	WebhookSecret   string

	CloudName      string // media store credentials
	CloudAPIKey    string
	CloudAPISecret string

	SendGridKey string
	EmailSender string

	PendingPurchaseTTLHours int // pending purchases older than this are failed by the sweeper
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		ClientURL: getEnv("CLIENT_URL", "http://localhost:5173"),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		WebhookSecret:   getEnv("WEBHOOK_ENDPOINT_SECRET", ""),

		CloudName:      getEnv("CLOUD_NAME", ""),
		CloudAPIKey:    getEnv("CLOUD_API_KEY", ""),
		CloudAPISecret: getEnv("CLOUD_API_SECRET", ""),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "no-reply@lms.local"),

		PendingPurchaseTTLHours: getEnvInt("PENDING_PURCHASE_TTL_HOURS", 24),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY is not set. Checkout sessions will fail.")
	}
	if AppConfig.WebhookSecret == "" {
		log.Println("Warning: WEBHOOK_ENDPOINT_SECRET is not set. Webhook verification will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
