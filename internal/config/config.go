package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	DatabaseURL   string   `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret     string   `mapstructure:"JWT_SECRET"`
	JWTExpire     string   `mapstructure:"JWT_EXPIRE"`
	ClientURL     string   `mapstructure:"CLIENT_URL"`
	SMTPHost      string   `mapstructure:"SMTP_HOST"`
	SMTPPort      int      `mapstructure:"SMTP_PORT"`
	SMTPUser      string   `mapstructure:"SMTP_USER"`
	SMTPPassword  string   `mapstructure:"SMTP_PASSWORD"`
	EmailFrom     string   `mapstructure:"EMAIL_FROM"`
	EmailFromName string   `mapstructure:"EMAIL_FROM_NAME"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("JWT_EXPIRE", "72h")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_FROM_NAME", "e-Appointment Team")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_EXPIRE")
	v.BindEnv("CLIENT_URL")
	v.BindEnv("SMTP_HOST")
	v.BindEnv("SMTP_PORT")
	v.BindEnv("SMTP_USER")
	v.BindEnv("SMTP_PASSWORD")
	v.BindEnv("EMAIL_FROM")
	v.BindEnv("EMAIL_FROM_NAME")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// TokenTTL parses JWT_EXPIRE as a Go duration string.
func (c *Config) TokenTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.JWTExpire)
	if err != nil {
		return 0, fmt.Errorf("JWT_EXPIRE is not a valid duration: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("JWT_EXPIRE must be positive, got %s", c.JWTExpire)
	}
	return d, nil
}

// MailEnabled reports whether SMTP delivery is configured. Without a host the
// server falls back to a logging-only sender.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}
