package server

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file in the working directory, if any
func LoadEnv() error {
	// A missing .env is normal outside development
	_ = godotenv.Load()
	return nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the value of an environment variable as an integer or a default value
func GetEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// Settings is the relay's environment
type Settings struct {
	Port         string
	ResendAPIKey string
	APIToken     string
	MailDomain   string
	DeliveryDB   string
	CORSOrigins  string
	BodyLimitMB  int
}

// LoadSettings reads the relay environment. defaultDB is used when DELIVERY_DB is unset.
func LoadSettings(defaultDB string) Settings {
	return Settings{
		Port:         GetEnv("PORT", "3001"),
		ResendAPIKey: GetEnv("RESEND_API_KEY", ""),
		APIToken:     GetEnv("API_TOKEN", ""),
		MailDomain:   GetEnv("MAIL_DOMAIN", "example.com"),
		DeliveryDB:   GetEnv("DELIVERY_DB", defaultDB),
		CORSOrigins:  GetEnv("CORS_ORIGINS", "*"),
		BodyLimitMB:  GetEnvInt("BODY_LIMIT_MB", 20),
	}
}
