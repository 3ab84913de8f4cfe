package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Backend names
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the full configuration
type Config struct {
	Backend string        `yaml:"backend" mapstructure:"backend"`
	SQLite  SQLiteConfig  `yaml:"sqlite" mapstructure:"sqlite"`
	Redis   RedisConfig   `yaml:"redis" mapstructure:"redis"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// SQLiteConfig configures the local object graph
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RedisConfig configures the shared object graph
type RedisConfig struct {
	Addr   string `yaml:"addr" mapstructure:"addr"`
	DB     int    `yaml:"db" mapstructure:"db"`
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
}

// ServerConfig configures the REST API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LoggingConfig configures the slog handler
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Dir returns the directory holding the config file and local database
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".things"
	}
	return filepath.Join(home, ".things")
}

// Path returns the default config file path
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Backend: BackendSQLite,
		SQLite:  SQLiteConfig{Path: filepath.Join(Dir(), "things.db")},
		Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "things:"},
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// New returns a viper instance with defaults and THINGS_* environment
// bindings. Flags can be bound onto it before Load
func New() *viper.Viper {
	def := Default()
	v := viper.New()
	v.SetDefault("backend", def.Backend)
	v.SetDefault("sqlite.path", def.SQLite.Path)
	v.SetDefault("redis.addr", def.Redis.Addr)
	v.SetDefault("redis.db", def.Redis.DB)
	v.SetDefault("redis.prefix", def.Redis.Prefix)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	v.SetEnvPrefix("things")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (a missing file is fine) and merges
// it with defaults, environment and any flags bound on v
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend selection
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path must be set for the sqlite backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr must be set for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendRedis)
	}
	return nil
}

// Write saves cfg as YAML, creating the parent directory
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
