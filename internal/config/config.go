package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/travelintrips/driver-portal/internal/models"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	JWTSecret string
	TokenTTL  time.Duration

	// WhatsApp gateway settings for the outbound messaging adapter.
	WhatsAppAPIURL string
	WhatsAppToken  string

	LogFile string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return &Config{
		Port: cast.ToInt(getEnv("PORT", "8080")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "driver_portal"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		JWTSecret: getEnv("JWT_SECRET", "supersecret"),
		TokenTTL:  time.Duration(cast.ToInt(getEnv("TOKEN_TTL_HOURS", "72"))) * time.Hour,

		WhatsAppAPIURL: getEnv("WHATSAPP_API_URL", "https://api.fonnte.com/send"),
		WhatsAppToken:  getEnv("WHATSAPP_API_TOKEN", ""),

		LogFile: getEnv("LOG_FILE", "./logs/app.log"),
	}
}

// OpenDB opens the single process-scoped GORM handle and migrates the schema.
// Every component that touches the database receives this handle by reference;
// nothing constructs its own client.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, cfg.DBTimezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Driver{},
		&models.User{},
		&models.Transfer{},
		&models.Booking{},
		&models.PaymentTransaction{},
	); err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}

	return db, nil
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
