package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDriver     string
	DatabaseURL  string
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool
	TemplatesDir string
	StaticDir    string
	SiteURL      string
	LogLevel     slog.Level

	Storage StorageConfig
}

type StorageConfig struct {
	Backend         string // "local" or "gcs"
	Bucket          string
	Dir             string
	PublicURL       string
	CredentialsFile string
}

// LoadConfig reads .env files (if present) and then the environment.
func LoadConfig() (*Config, error) {
	// Missing files are fine; the real environment wins over both.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:         getEnv("PORT", "8585"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL:  getEnv("DATABASE_URL", "./wilsons.db"),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		TemplatesDir: getEnv("TEMPLATES_DIR", ""),
		StaticDir:    getEnv("STATIC_DIR", ""),
		SiteURL:      strings.TrimSuffix(getEnv("SITE_URL", "https://wilsonsseafoods.com.au"), "/"),
		Storage: StorageConfig{
			Backend:         getEnv("STORAGE_BACKEND", "local"),
			Bucket:          getEnv("STORAGE_BUCKET", "images"),
			Dir:             getEnv("STORAGE_DIR", "./uploads"),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "debug"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}

	switch cfg.Storage.Backend {
	case "local":
		if cfg.Storage.PublicURL == "" {
			cfg.Storage.PublicURL = "/uploads"
		}
	case "gcs":
		// PublicURL left empty defaults to storage.googleapis.com/<bucket>
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (want local or gcs)", cfg.Storage.Backend)
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 secret of at least 32 bytes, or generates a random
// one for development.
func loadKey(name string) []byte {
	keyStr := os.Getenv(name)
	if keyStr == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decodedKey, err := base64.StdEncoding.DecodeString(keyStr)
	if err != nil || len(decodedKey) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decodedKey
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
