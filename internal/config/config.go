package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	File     FileConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	UI       UIConfig
	Log      LogConfig
}

// StorageConfig selects the key-value backend the cart persists to.
type StorageConfig struct {
	Backend string
	Key     string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// RedisConfig holds redis settings used by the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// FileConfig holds settings for the json file backend.
type FileConfig struct {
	Path string
}

// CatalogConfig points at an optional product catalog file.
type CatalogConfig struct {
	Path string
}

// CartConfig holds cart store settings.
type CartConfig struct {
	Timeout time.Duration
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// LogConfig holds logging settings. An empty path discards logs.
type LogConfig struct {
	Level     string
	Path      string
	AddSource bool `mapstructure:"add_source"`
}

// Load reads configuration from file and env. Env var overrides use prefix GOMARKETPLACE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GOMARKETPLACE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gomarketplace"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GOMARKETPLACE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	return c, nil
}

func setDefaults(v *viper.Viper) {
	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "gomarketplace")

	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.key", "@GoMarketplace:products")
	v.SetDefault("database.path", filepath.Join(dataDir, "gomarketplace.db"))
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "gomarketplace:")
	v.SetDefault("file.path", filepath.Join(dataDir, "storage.json"))
	v.SetDefault("catalog.path", "")
	v.SetDefault("cart.timeout", 5*time.Second)
	v.SetDefault("ui.currency_symbol", "R$")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir, "gomarketplace.log"))
	v.SetDefault("log.add_source", false)
}

// Save writes the provided config to disk, creating the config directory if needed.
// The redis password is never written; set it with GOMARKETPLACE_REDIS_PASSWORD.
func Save(cfg Config) error {
	path := os.Getenv("GOMARKETPLACE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "gomarketplace", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.key", cfg.Storage.Key)
	v.Set("database.path", cfg.Database.Path)
	v.Set("redis.addr", cfg.Redis.Addr)
	v.Set("redis.db", cfg.Redis.DB)
	v.Set("redis.prefix", cfg.Redis.Prefix)
	v.Set("file.path", cfg.File.Path)
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("cart.timeout", cfg.Cart.Timeout.String())
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.add_source", cfg.Log.AddSource)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
