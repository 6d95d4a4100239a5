package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// One connection string per document database. Workers, tickets and
	// reviews fall back to DatabaseURL when left empty.
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	WorkersDatabaseURL string `mapstructure:"WORKERS_DATABASE_URL"`
	TicketsDatabaseURL string `mapstructure:"TICKETS_DATABASE_URL"`
	ReviewsDatabaseURL string `mapstructure:"REVIEWS_DATABASE_URL"`
	DatabaseName       string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCartDB   int    `mapstructure:"REDIS_CART_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisAIDB     int    `mapstructure:"REDIS_AI_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Checkout.
	StripeSecretKey     string        `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string        `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	Currency            string        `mapstructure:"CURRENCY"`
	DeliveryFee         float64       `mapstructure:"DELIVERY_FEE"`
	PlatformFee         float64       `mapstructure:"PLATFORM_FEE"`
	TaxRate             float64       `mapstructure:"TAX_RATE"`
	PaymentWindow       time.Duration `mapstructure:"PAYMENT_WINDOW"`
	CartTTL             time.Duration `mapstructure:"CART_TTL"`
	ClientOrigin        string        `mapstructure:"CLIENT_ORIGIN"`
	AllowedOrigins      []string      `mapstructure:"ALLOWED_ORIGINS"`

	// Cloudinary image storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Google services.
	GeminiAPIKey            string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel             string `mapstructure:"GEMINI_MODEL"`
	GoogleCredentialsFile   string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if AppConfig.WorkersDatabaseURL == "" {
		AppConfig.WorkersDatabaseURL = AppConfig.DatabaseURL
	}
	if AppConfig.TicketsDatabaseURL == "" {
		AppConfig.TicketsDatabaseURL = AppConfig.WorkersDatabaseURL
	}
	if AppConfig.ReviewsDatabaseURL == "" {
		AppConfig.ReviewsDatabaseURL = AppConfig.DatabaseURL
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "5003")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)

	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("WORKERS_DATABASE_URL", "")
	viper.SetDefault("TICKETS_DATABASE_URL", "")
	viper.SetDefault("REVIEWS_DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "localconnect")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CART_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_AI_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)

	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("CURRENCY", "inr")
	viper.SetDefault("DELIVERY_FEE", 35)
	viper.SetDefault("PLATFORM_FEE", 10)
	viper.SetDefault("TAX_RATE", 0.13)
	viper.SetDefault("PAYMENT_WINDOW", "30m")
	viper.SetDefault("CART_TTL", "168h")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
