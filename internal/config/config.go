// Package config loads service configuration with multi-source priority.
//
// Sources, highest to lowest:
//  1. Environment variables (NEXTWORD_* plus GOOGLE_API_KEY)
//  2. Config file (config.yaml in ~/.nextword or the working directory)
//  3. Defaults
//
// Validation uses sentinel errors so callers can branch with errors.Is().
// Config marshals with the API key masked; log the struct freely.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates no Gemini credential was provided.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidTemperature indicates the temperature is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidCount indicates the default suggestion count is out of range.
	ErrInvalidCount = errors.New("invalid suggestions count")

	// ErrInvalidMaxDepth indicates the tree depth bound is out of range.
	ErrInvalidMaxDepth = errors.New("invalid max depth")

	// ErrInvalidMode indicates an unknown suggestion mode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidAddr indicates an empty listen address.
	ErrInvalidAddr = errors.New("invalid listen address")

	// ErrInvalidRateLimit indicates a non-positive rate limit setting.
	ErrInvalidRateLimit = errors.New("invalid rate limit")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

const (
	// ModeWords asks the model for a flat suggestion list.
	ModeWords = "words"

	// ModeTree asks the model for branching continuations.
	ModeTree = "tree"
)

// OTLPConfig holds the trace exporter settings. An empty Endpoint
// disables tracing entirely.
type OTLPConfig struct {
	Endpoint    string `mapstructure:"endpoint" json:"endpoint"`
	ServiceName string `mapstructure:"service_name" json:"service_name"`
	Environment string `mapstructure:"environment" json:"environment"`
}

// Config stores service configuration.
// SECURITY: GoogleAPIKey is masked in MarshalJSON; update that method
// when adding new sensitive fields.
type Config struct {
	// Gemini credential. Also accepted via GOOGLE_API_KEY / GEMINI_API_KEY.
	GoogleAPIKey string `mapstructure:"google_api_key" json:"google_api_key"`

	// Generation settings
	ModelName        string  `mapstructure:"model_name" json:"model_name"` // optional pin; empty means fallback chain
	Temperature      float32 `mapstructure:"temperature" json:"temperature"`
	SuggestionsCount int     `mapstructure:"suggestions_count" json:"suggestions_count"`
	MaxDepth         int     `mapstructure:"max_depth" json:"max_depth"`
	Mode             string  `mapstructure:"mode" json:"mode"` // "words" or "tree"

	// HTTP server settings
	Addr           string   `mapstructure:"addr" json:"addr"`
	CORSOrigins    []string `mapstructure:"cors_origins" json:"cors_origins"`
	TrustProxy     bool     `mapstructure:"trust_proxy" json:"trust_proxy"` // honor X-Real-IP/X-Forwarded-For behind a reverse proxy
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps" json:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst" json:"rate_limit_burst"`

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"` // debug, info, warn, error
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`

	// Tracing
	OTLP OTLPConfig `mapstructure:"otlp" json:"otlp"`
}

// Load reads configuration from file, environment, and defaults, then
// validates it. The config file is optional.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".nextword"))
	}
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", "") // no pin, use the fallback chain
	v.SetDefault("temperature", 0.3)
	v.SetDefault("suggestions_count", 5)
	v.SetDefault("max_depth", 4)
	v.SetDefault("mode", ModeWords)

	v.SetDefault("addr", ":8080")
	v.SetDefault("cors_origins", []string{"http://localhost:4200"})
	v.SetDefault("trust_proxy", false)
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("otlp.endpoint", "")
	v.SetDefault("otlp.service_name", "nextword")
	v.SetDefault("otlp.environment", "dev")
}

// bindEnvVariables wires environment overrides. All keys respond to
// NEXTWORD_<KEY>; the credential additionally accepts the two names
// Google tooling conventionally uses.
func bindEnvVariables(v *viper.Viper) {
	v.SetEnvPrefix("NEXTWORD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	if err := v.BindEnv("google_api_key", "NEXTWORD_GOOGLE_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"); err != nil {
		panic(fmt.Sprintf("BUG: binding google_api_key: %v", err))
	}
}

// Validate checks ranges and enumerations. Returns sentinel errors
// checkable with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.GoogleAPIKey == "" {
		return fmt.Errorf("%w: set GOOGLE_API_KEY (or google_api_key in config.yaml)\n"+
			"Get a key at: https://ai.google.dev/gemini-api/docs/api-key",
			ErrMissingAPIKey)
	}

	// Gemini accepts 0.0 (deterministic) through 2.0.
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}

	if c.SuggestionsCount < 1 || c.SuggestionsCount > 10 {
		return fmt.Errorf("%w: must be between 1 and 10, got %d", ErrInvalidCount, c.SuggestionsCount)
	}

	if c.MaxDepth < 1 || c.MaxDepth > 10 {
		return fmt.Errorf("%w: must be between 1 and 10, got %d", ErrInvalidMaxDepth, c.MaxDepth)
	}

	if c.Mode != ModeWords && c.Mode != ModeTree {
		return fmt.Errorf("%w: %q is not %q or %q", ErrInvalidMode, c.Mode, ModeWords, ModeTree)
	}

	if c.Addr == "" {
		return fmt.Errorf("%w: addr cannot be empty", ErrInvalidAddr)
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("%w: rate_limit_rps must be positive, got %g", ErrInvalidRateLimit, c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("%w: rate_limit_burst must be at least 1, got %d", ErrInvalidRateLimit, c.RateLimitBurst)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel maps the configured log level name to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q (want debug, info, warn, or error)", ErrInvalidLogLevel, c.LogLevel)
	}
}

// maskedValue replaces secrets in serialized config. Full-width blocks
// avoid accidental substring matches against the real value.
const maskedValue = "████████"

// MarshalJSON masks GoogleAPIKey so the config can be logged.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	if a.GoogleAPIKey != "" {
		a.GoogleAPIKey = maskedValue
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to keep secrets out of accidental prints.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
