package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the facet configuration.
type Config struct {
	Provider          string        `json:"provider" mapstructure:"provider"`
	Model             string        `json:"model" mapstructure:"model"`
	ReviewType        string        `json:"review_type" mapstructure:"review_type"`
	Format            string        `json:"format" mapstructure:"format"`
	MaxTokens         int           `json:"max_tokens" mapstructure:"max_tokens"`
	Temperature       float64       `json:"temperature" mapstructure:"temperature"`
	MaintenanceFactor float64       `json:"maintenance_factor" mapstructure:"maintenance_factor"`
	Include           []string      `json:"include" mapstructure:"include"`
	Exclude           []string      `json:"exclude" mapstructure:"exclude"`
	MaxFileSize       int64         `json:"max_file_size" mapstructure:"max_file_size"`
	RulesFile         string        `json:"rules_file,omitempty" mapstructure:"rules_file"`
	Cache             CacheConfig   `json:"cache" mapstructure:"cache"`
	Privacy           PrivacyConfig `json:"privacy" mapstructure:"privacy"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Dir        string `json:"dir,omitempty" mapstructure:"dir"`
	TTLSeconds int    `json:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redact_secrets" mapstructure:"redact_secrets"`
	RedactPaths   []string `json:"redact_paths,omitempty" mapstructure:"redact_paths"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:          "anthropic",
		Model:             "claude-sonnet-4-6",
		ReviewType:        "best-practices",
		Format:            "text",
		Temperature:       0.1,
		MaintenanceFactor: 0.15,
		Include:           []string{"**/*"},
		Exclude:           []string{"vendor/**", "**/*.gen.go", "**/dist/**", "**/node_modules/**"},
		MaxFileSize:       1048576,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for facet.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "facet"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "facet"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "facet"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "facet"), nil
	default:
		return filepath.Join(home, ".config", "facet"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// Environment variables use the FACET_ prefix with underscores for nesting
// (FACET_PROVIDER, FACET_CACHE_TTL_SECONDS). The overrides map comes from CLI
// flags; only flags the user actually set should be present.
func Load(overrides map[string]string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if readErr := v.ReadInConfig(); readErr != nil {
			return Config{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
		}
	}

	v.SetEnvPrefix("FACET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range overrides {
		if value != "" {
			v.Set(key, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("provider", def.Provider)
	v.SetDefault("model", def.Model)
	v.SetDefault("review_type", def.ReviewType)
	v.SetDefault("format", def.Format)
	v.SetDefault("max_tokens", def.MaxTokens)
	v.SetDefault("temperature", def.Temperature)
	v.SetDefault("maintenance_factor", def.MaintenanceFactor)
	v.SetDefault("include", def.Include)
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("max_file_size", def.MaxFileSize)
	v.SetDefault("rules_file", def.RulesFile)
	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.dir", def.Cache.Dir)
	v.SetDefault("cache.ttl_seconds", def.Cache.TTLSeconds)
	v.SetDefault("privacy.redact_secrets", def.Privacy.RedactSecrets)
	v.SetDefault("privacy.redact_paths", def.Privacy.RedactPaths)
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadFile loads the config file overlaid on defaults, ignoring env and flag
// overrides. A missing file is reported as an error wrapping fs.ErrNotExist
// so callers can distinguish "never configured" from a broken file.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return Config{}, fmt.Errorf("configuration %s: %w", path, statErr)
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read configuration from %s: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration from %s: %w", path, err)
	}
	return cfg, nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "review_type":
		cfg.ReviewType = value
	case "format":
		cfg.Format = value
	case "max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_tokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "maintenance_factor":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("maintenance_factor must be a number: %w", err)
		}
		cfg.MaintenanceFactor = f
	case "max_file_size":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("max_file_size must be an integer: %w", err)
		}
		cfg.MaxFileSize = n
	case "rules_file":
		cfg.RulesFile = value
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttl_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttl_seconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
