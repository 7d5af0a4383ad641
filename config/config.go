package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Tiendanube TiendanubeConfig `mapstructure:"tiendanube"`
	Store      StoreConfig      `mapstructure:"store"`
	Search     SearchConfig     `mapstructure:"search"`
	Promo      PromoConfig      `mapstructure:"promo"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	Environment     string        `mapstructure:"environment" validate:"oneof=development production test"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// AuthConfig holds the shared key inbound callers must present
type AuthConfig struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
}

// TiendanubeConfig holds Tiendanube API configuration
type TiendanubeConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	StoreID     string        `mapstructure:"store_id" validate:"required"`
	AccessToken string        `mapstructure:"access_token" validate:"required"`
	UserAgent   string        `mapstructure:"user_agent" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit   float64       `mapstructure:"rate_limit" validate:"gt=0"`
	RateBurst   int           `mapstructure:"rate_burst" validate:"min=1"`
}

// StoreConfig describes the public storefront buy links point to
type StoreConfig struct {
	BaseURL        string   `mapstructure:"base_url" validate:"omitempty,url"`
	CatalogBaseURL string   `mapstructure:"catalog_base_url" validate:"omitempty,url"`
	ProductPath    string   `mapstructure:"product_path"`
	Locales        []string `mapstructure:"locales" validate:"min=1,dive,required"`
}

// SearchConfig holds catalog scan limits and thresholds
type SearchConfig struct {
	DefaultLimit      int `mapstructure:"default_limit"`
	MinLimit          int `mapstructure:"min_limit" validate:"min=1"`
	MaxLimit          int `mapstructure:"max_limit"`
	PageSize          int `mapstructure:"page_size" validate:"min=1,max=200"`
	MaxPages          int `mapstructure:"max_pages" validate:"min=1"`
	LinkMaxPages      int `mapstructure:"link_max_pages" validate:"min=1"`
	OverCollect       int `mapstructure:"over_collect" validate:"min=1"`
	EnrichFloor       int `mapstructure:"enrich_floor" validate:"min=1"`
	EarlyExitScore    int `mapstructure:"early_exit_score" validate:"min=1"`
	MinAcceptScore    int `mapstructure:"min_accept_score" validate:"min=1"`
	DetailConcurrency int `mapstructure:"detail_concurrency" validate:"min=1,max=10"`
}

// PromoConfig holds the brand-controlled promotion text
type PromoConfig struct {
	Policy    string `mapstructure:"policy"`
	Message   string `mapstructure:"message"`
	Code      string `mapstructure:"code"`
	Discount  string `mapstructure:"discount"`
	AppliesTo string `mapstructure:"applies_to"`
	Instagram string `mapstructure:"instagram"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

// legacyEnv maps config keys to the variable names older deployments set.
// The prefixed name always wins.
var legacyEnv = map[string]string{
	"server.port":             "PORT",
	"auth.api_key":            "API_KEY",
	"tiendanube.access_token": "TN_ACCESS_TOKEN",
	"tiendanube.user_agent":   "TN_USER_AGENT",
	"tiendanube.store_id":     "TN_STORE_ID",
	"store.base_url":          "STORE_BASE_URL",
	"store.catalog_base_url":  "STORE_BASE_URL_MTB",
}

const envPrefix = "CATALOGPROXY"

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	// .env is optional; variables already in the environment are not overridden
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/catalog-proxy/")

	// Environment variable settings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", legacy, err)
		}
	}

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s") // a full catalog scan is slow
	v.SetDefault("server.shutdown_timeout", "10s")

	// Auth defaults; registered so the key is visible to AutomaticEnv
	v.SetDefault("auth.api_key", "")

	// Tiendanube defaults
	v.SetDefault("tiendanube.base_url", "https://api.tiendanube.com/v1")
	v.SetDefault("tiendanube.store_id", "")
	v.SetDefault("tiendanube.access_token", "")
	v.SetDefault("tiendanube.user_agent", "")
	v.SetDefault("tiendanube.timeout", "30s")
	v.SetDefault("tiendanube.rate_limit", 2)
	v.SetDefault("tiendanube.rate_burst", 40)

	// Store defaults
	v.SetDefault("store.base_url", "")
	v.SetDefault("store.catalog_base_url", "")
	v.SetDefault("store.product_path", "productos")
	v.SetDefault("store.locales", []string{"es", "pt", "en"})

	// Search defaults
	v.SetDefault("search.default_limit", 10)
	v.SetDefault("search.min_limit", 1)
	v.SetDefault("search.max_limit", 20)
	v.SetDefault("search.page_size", 200)
	v.SetDefault("search.max_pages", 30)
	v.SetDefault("search.link_max_pages", 20)
	v.SetDefault("search.over_collect", 100)
	v.SetDefault("search.enrich_floor", 5)
	v.SetDefault("search.early_exit_score", 10)
	v.SetDefault("search.min_accept_score", 3)
	v.SetDefault("search.detail_concurrency", 1)

	// Promo defaults
	v.SetDefault("promo.policy", "fixed_only")
	v.SetDefault("promo.message",
		"Tenemos un {discount} OFF para primera compra con el cupón {code}. "+
			"Las promociones puntuales y cupones temporales los publicamos en nuestro Instagram {instagram} ✨")
	v.SetDefault("promo.code", "PRIMERACOMPRA")
	v.SetDefault("promo.discount", "10%")
	v.SetDefault("promo.applies_to", "primera compra")
	v.SetDefault("promo.instagram", "@mariat.boticario")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age_days", 30)
}

// validate validates the configuration
func validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}

	s := config.Search
	if s.MaxLimit < s.MinLimit {
		return fmt.Errorf("search max_limit (%d) must be >= min_limit (%d)", s.MaxLimit, s.MinLimit)
	}
	if s.DefaultLimit < s.MinLimit || s.DefaultLimit > s.MaxLimit {
		return fmt.Errorf("search default_limit (%d) must be within [%d, %d]", s.DefaultLimit, s.MinLimit, s.MaxLimit)
	}
	if s.MinAcceptScore > s.EarlyExitScore {
		return fmt.Errorf("search min_accept_score (%d) must be <= early_exit_score (%d)", s.MinAcceptScore, s.EarlyExitScore)
	}

	return nil
}
