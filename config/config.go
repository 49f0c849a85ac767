package config

import (
	"os"
	"strconv"
)

// Config carries all runtime settings, populated from environment
// variables (a .env file is loaded by main before this runs).
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	JWTSecret []byte

	MediaDir string

	ShoppingListHeader   string
	ShoppingListFilename string

	DefaultPageLimit int
}

// Load reads the configuration from the environment, falling back to
// development defaults.
func Load() *Config {
	return &Config{
		Port: GetEnv("PORT", "8080"),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "password"),
		DBName:     GetEnv("DB_NAME", "foodgram"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "disable"),

		JWTSecret: []byte(GetEnv("JWT_SECRET", "dev-secret")),

		MediaDir: GetEnv("MEDIA_DIR", "media"),

		ShoppingListHeader:   GetEnv("SHOPPING_LIST_HEADER", "Shopping list:\n\n"),
		ShoppingListFilename: GetEnv("SHOPPING_LIST_FILENAME", "shopping_list.txt"),

		DefaultPageLimit: GetEnvInt("PAGE_LIMIT", 6),
	}
}

// GetEnv returns the value of the environment variable or the fallback.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integer-valued variables; a value that does not
// parse falls back as well.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
