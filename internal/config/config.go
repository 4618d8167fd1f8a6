package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"premium-store/internal/domain/model"
)

type RuntimeConfig struct {
	Dev bool
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type CatalogConfig struct {
	Kind     string        `yaml:"kind"` // file|http|postgres
	URL      string        `yaml:"url"`
	Path     string        `yaml:"path"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // 0 disables the redis cache
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type PricingConfig struct {
	Locale            string  `yaml:"locale"`
	CurrencySymbol    string  `yaml:"currency_symbol"`
	HeadlineThreshold float64 `yaml:"headline_threshold"`
}

type CheckoutConfig struct {
	Channels []model.PaymentChannel `yaml:"channels"`
	Contact  string                 `yaml:"contact"`
}

type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Session  SessionConfig  `yaml:"session"`
	Telegram TelegramConfig `yaml:"telegram"`

	Runtime RuntimeConfig `yaml:"-"`
}

// DefaultChannels are the settlement accounts printed on every payment payload.
var DefaultChannels = []model.PaymentChannel{
	{Name: "Momo", Account: "0909699257"},
	{Name: "MB Bank", Account: "4888888882004"},
}

// LoadConfig reads the YAML file at path, applies a .env file next to the
// working directory when present, then environment overrides and defaults.
// A missing YAML file is fine in dev mode.
func LoadConfig(path string, dev bool) (*Config, error) {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && dev:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.Runtime.Dev = dev
	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STORE_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
		if cfg.Catalog.Kind == "" {
			cfg.Catalog.Kind = "http"
		}
	}
	if v := os.Getenv("STORE_SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("STORE_REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("STORE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("STORE_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.HTTP.RequestTimeout <= 0 {
		cfg.HTTP.RequestTimeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	cfg.Catalog.Kind = strings.ToLower(strings.TrimSpace(cfg.Catalog.Kind))
	if cfg.Catalog.Kind == "" {
		cfg.Catalog.Kind = "file"
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "./data/providers.json"
	}
	if cfg.Catalog.Timeout <= 0 {
		cfg.Catalog.Timeout = 10 * time.Second
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 4
	}
	if cfg.Pricing.Locale == "" {
		cfg.Pricing.Locale = "vi"
	}
	if cfg.Pricing.CurrencySymbol == "" {
		cfg.Pricing.CurrencySymbol = "₫"
	}
	if cfg.Pricing.HeadlineThreshold <= 0 {
		cfg.Pricing.HeadlineThreshold = 35000
	}
	if len(cfg.Checkout.Channels) == 0 {
		cfg.Checkout.Channels = append([]model.PaymentChannel(nil), DefaultChannels...)
	}
	if cfg.Checkout.Contact == "" {
		cfg.Checkout.Contact = "0909.699.257"
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 2 * time.Hour
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "store_session"
	}
	if cfg.Session.Secret == "" && cfg.Runtime.Dev {
		cfg.Session.Secret = "dev-session-secret-change-me"
	}
}

// Validate checks the minimal set of fields the service cannot run without.
func (c *Config) Validate() error {
	switch c.Catalog.Kind {
	case "file":
	case "http":
		if c.Catalog.URL == "" {
			return errors.New("catalog.url is required for kind=http")
		}
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("database.url is required for catalog kind=postgres")
		}
	default:
		return fmt.Errorf("catalog.kind %q not supported", c.Catalog.Kind)
	}
	if c.Catalog.CacheTTL > 0 && c.Redis.URL == "" {
		return errors.New("redis.url is required when catalog.cache_ttl is set")
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret is required")
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return errors.New("telegram.chat_id is required when telegram.token is set")
	}
	return nil
}
