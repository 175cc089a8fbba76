package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every process-level setting. Values come from the
// environment (optionally populated via a .env file in main) with
// development defaults matching docker-compose.
type Config struct {
	Port      string
	ClientURL string

	PostgresDSN string
	RedisAddr   string
	RedisDB     int

	PublicKeyPath  string
	PrivateKeyPath string
	TokenTTL       time.Duration

	UploadDir string
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		ClientURL:      getEnv("CLIENT_URL", "http://localhost:3000"),
		PostgresDSN:    getEnv("POSTGRES_DSN", "host=localhost user=user password=password dbname=chatwiredb port=5432 sslmode=disable"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		PublicKeyPath:  getEnv("PUBLIC_KEY_PATH", "key/publickey.crt"),
		PrivateKeyPath: getEnv("PRIVATE_KEY_PATH", "key/privatekey.pem"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 72*time.Hour),
		UploadDir:      getEnv("UPLOAD_DIR", "public/uploads"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
