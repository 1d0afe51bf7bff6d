package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	DBDriver  string
	DBDSN     string
	LogLevel  string
	LogPretty bool
}

// Load reads configuration from the environment, after sourcing a .env file
// when one is present. A missing .env file is not an error; the environment
// may already be populated.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		DBDriver:  getEnv("DB_DRIVER", "postgres"),
		DBDSN:     getEnv("DB_DSN", "host=localhost user=miniblog dbname=miniblog port=5432 sslmode=disable"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnv("LOG_PRETTY", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
