package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

// Config holds everything the process reads from the environment. The token
// secrets are handed to the token service at construction and never read
// again.
type Config struct {
	Port             string
	DatabaseURL      string
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	UploadDir        string
	CORSOrigin       string
	Env              string
	LogLevel         string
}

// Load reads a .env file if present, then the environment.
func Load() (Config, error) {
	_ = gotenv.Load()

	cfg := Config{
		Port:             getenv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   getduration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenTTL:  getduration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
		UploadDir:        getenv("UPLOAD_DIR", "uploads/profilePhotos"),
		CORSOrigin:       getenv("CORS_ORIGIN", "*"),
		Env:              getenv("APP_ENV", "development"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTAccessSecret == "" {
		return Config{}, fmt.Errorf("JWT_ACCESS_SECRET is not set")
	}
	if cfg.JWTRefreshSecret == "" {
		return Config{}, fmt.Errorf("JWT_REFRESH_SECRET is not set")
	}
	// Distinct secrets are what make an access token useless as a refresh
	// token and vice versa.
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		return Config{}, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
