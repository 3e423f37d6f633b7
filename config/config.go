package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Update policies for PUT /cars/:id. Replace overwrites every column,
// clearing image_url when no new file is sent; patch keeps the stored
// image unless the request carries one.
const (
	UpdatePolicyReplace = "replace"
	UpdatePolicyPatch   = "patch"
)

type Config struct {
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	Port           string
	ContentDir     string
	StaticPrefix   string
	UpdatePolicy   string
	RequestTimeout time.Duration
}

// Load builds the configuration once at process start. A .env file is
// honored when present, otherwise plain environment variables with
// fallbacks are used.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", ""),
		DBUser:         getEnv("DB_USER", "root"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "cars"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		Port:           getEnv("PORT", "3000"),
		ContentDir:     getEnv("CONTENT_DIR", "./images"),
		StaticPrefix:   getEnv("STATIC_PREFIX", "/images"),
		UpdatePolicy:   getEnv("UPDATE_POLICY", UpdatePolicyReplace),
		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT", 10)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}
