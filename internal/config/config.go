package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings"

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string   // Application port
	DBDriver       string   // "mysql" or "sqlite"
	DBUser         string   // Database user (mysql)
	DBPassword     string   // Database password (mysql)
	DBHost         string   // Database host (mysql)
	DBPort         string   // Database port (mysql)
	DBName         string   // Database name (mysql)
	SQLitePath     string   // Database file path (sqlite)
	JWTSecret      string   // JWT secret key
	CacheBackend   string   // "memory" or "redis"
	RedisAddr      string   // Redis server address
	RedisPass      string   // Redis password
	RedisDB        int      // Redis database number
	AllowedOrigins []string // CORS origins for the SPA
	IsProd         bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "5000"),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBName:       os.Getenv("DB_NAME"),
		SQLitePath:   getEnv("SQLITE_PATH", "gainz.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CacheBackend: getEnv("CACHE_BACKEND", "memory"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisDB:      redisDB,
		IsProd:       os.Getenv("IS_PROD") == "true",
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	return cfg
}

// DSN builds the MySQL data source name from the config
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
