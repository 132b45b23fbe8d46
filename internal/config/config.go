package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/WeBoost/aurora-backend/internal/logger"
	"github.com/WeBoost/aurora-backend/internal/utils"
)

// Config is the platform-level configuration. Values come from an
// optional YAML file and can be overridden by env vars.
type Config struct {
	DefaultCommissionRate float64  `yaml:"default_commission_rate"`
	TopServices           int      `yaml:"top_services"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
	WebhookSecret         string   `yaml:"webhook_secret"`
}

func defaults() Config {
	return Config{
		DefaultCommissionRate: 10,
		TopServices:           5,
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
	}
}

// Load reads CONFIG_PATH when set, otherwise returns defaults with env
// overrides applied.
func Load(log *logger.Logger) (Config, error) {
	cfg := defaults()

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		log.Info("Loaded platform config", "path", path)
	}

	cfg.DefaultCommissionRate = utils.GetEnvAsFloat("DEFAULT_COMMISSION_RATE", cfg.DefaultCommissionRate, log)
	cfg.TopServices = utils.GetEnvAsInt("TOP_SERVICES", cfg.TopServices, log)
	if secret := strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")); secret != "" {
		cfg.WebhookSecret = secret
	}
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	if cfg.DefaultCommissionRate < 0 || cfg.DefaultCommissionRate > 100 {
		return cfg, fmt.Errorf("default commission rate out of range: %v", cfg.DefaultCommissionRate)
	}
	if cfg.TopServices <= 0 {
		cfg.TopServices = 5
	}
	return cfg, nil
}
