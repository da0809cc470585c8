package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the full process configuration, loaded once in main and passed
// by reference to every component that needs it. There is no ambient global.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" env-default:"8080"`

	JWTSecret         string `env:"JWT_SECRET"`
	JWTExpiresMinutes int    `env:"JWT_EXPIRES_MINUTES" env-default:"1440"`

	// Shared secret required by the admin self-registration endpoint.
	AdminSecretKey string `env:"ADMIN_SECRET_KEY"`

	// Root directory for uploaded PAR documents.
	UploadDir string `env:"UPLOAD_DIR" env-default:"uploads"`

	CORSOriginsRaw string `env:"CORS_ORIGINS" env-default:"http://localhost:4200"`
	CORSOrigins    []string

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresMinutes) * time.Minute
}

// Load reads .env (if present) then the environment. Secrets have no
// defaults; missing ones fail startup rather than falling back silently.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if cfg.AdminSecretKey == "" {
		return nil, fmt.Errorf("ADMIN_SECRET_KEY is empty")
	}
	if cfg.JWTExpiresMinutes <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_MINUTES must be positive")
	}

	for _, o := range strings.Split(cfg.CORSOriginsRaw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return &cfg, nil
}
