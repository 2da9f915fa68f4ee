package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultJWTKey             = "change-me-jwt-key"
	defaultJWTIssuer          = "prodcatalog"
	defaultJWTAudience        = "prodcatalog-clients"
	defaultAccessTokenMinutes = 15
	defaultRefreshTokenDays   = 30
	defaultUploadDir          = "./uploads"
	defaultPort               = "8080"
)

// JWTConfig is the signing configuration bundle. Recognized keys follow the
// environment: JWT_KEY, JWT_ISSUER, JWT_AUDIENCE, ACCESS_TOKEN_MINUTES,
// REFRESH_TOKEN_DAYS. Missing numeric settings fall back to 15 minutes and
// 30 days.
type JWTConfig struct {
	Key                string
	Issuer             string
	Audience           string
	AccessTokenMinutes int
	RefreshTokenDays   int
}

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	UploadDir   string
	JWT         JWTConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev"))),
		Port:        getEnv("PORT", defaultPort),
		DatabaseURL: getEnv("DATABASE_URL", "catalog.db"),
		UploadDir:   getEnv("UPLOAD_DIR", defaultUploadDir),
		JWT: JWTConfig{
			Key:      strings.TrimSpace(getEnv("JWT_KEY", defaultJWTKey)),
			Issuer:   strings.TrimSpace(getEnv("JWT_ISSUER", defaultJWTIssuer)),
			Audience: strings.TrimSpace(getEnv("JWT_AUDIENCE", defaultJWTAudience)),
		},
	}

	var err error
	cfg.JWT.AccessTokenMinutes, err = parseIntEnv("ACCESS_TOKEN_MINUTES", defaultAccessTokenMinutes)
	if err != nil {
		return nil, err
	}
	cfg.JWT.RefreshTokenDays, err = parseIntEnv("REFRESH_TOKEN_DAYS", defaultRefreshTokenDays)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWT.AccessTokenMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_MINUTES must be > 0")
	}
	if cfg.JWT.RefreshTokenDays <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_DAYS must be > 0")
	}
	if cfg.JWT.Issuer == "" || cfg.JWT.Audience == "" {
		return fmt.Errorf("JWT_ISSUER and JWT_AUDIENCE must not be empty")
	}
	if isProdLike(cfg.AppEnv) && (cfg.JWT.Key == "" || cfg.JWT.Key == defaultJWTKey) {
		return fmt.Errorf("in prod/release JWT_KEY must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
