// Package config loads the turing CLI and server settings from YAML.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/turing/internal/logging"
)

// DefaultPath is looked up when no --config flag is given.
const DefaultPath = "turing.yaml"

// EnvEncryptionKey overrides store.encryption.key, so the key can stay out of the file.
const EnvEncryptionKey = "TURING_ENCRYPTION_KEY"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config represents the structure of turing.yaml.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Store StoreConfig `yaml:"store"`
	HTTP  HTTPConfig  `yaml:"http"`
	Run   RunConfig   `yaml:"run"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type StoreConfig struct {
	Driver     string           `yaml:"driver"`
	Dir        string           `yaml:"dir"`
	Redis      RedisConfig      `yaml:"redis"`
	Encryption EncryptionConfig `yaml:"encryption"`
}

// EncryptionConfig enables AES-256-GCM sealing of stored runs.
// Keys are hex encoded and 32 bytes long; an empty Key disables encryption.
type EncryptionConfig struct {
	Key          string   `yaml:"key"`
	FallbackKeys []string `yaml:"fallback_keys"`
}

// Keys decodes the active and fallback keys.
func (e EncryptionConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if active, err = decodeKey(e.Key); err != nil {
		return nil, nil, fmt.Errorf("store.encryption.key: %w", err)
	}
	for i, k := range e.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("store.encryption.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("want 32 bytes, got %d", len(key))
	}
	return key, nil
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// RunConfig holds defaults for machine runs started by the CLI and servers.
type RunConfig struct {
	// MaxSteps bounds runs started from the CLI and APIs. Zero means unbounded.
	MaxSteps int    `yaml:"max_steps"`
	Blank    string `yaml:"blank"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Store: StoreConfig{
			Driver: DriverMemory,
			Dir:    ".turing/runs",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "turing:run:",
			},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Run:  RunConfig{MaxSteps: 100000, Blank: "_"},
	}
}

// Load reads path on top of the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but treats a missing file as "use defaults".
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Load("")
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if key := os.Getenv(EnvEncryptionKey); key != "" {
		c.Store.Encryption.Key = key
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q (want memory, file or redis)", c.Store.Driver)
	}
	if c.Store.Driver == DriverFile && c.Store.Dir == "" {
		return errors.New("store.dir is required for the file driver")
	}
	if c.Store.Driver == DriverRedis && c.Store.Redis.Addr == "" {
		return errors.New("store.redis.addr is required for the redis driver")
	}
	if c.Store.Redis.TTL < 0 {
		return errors.New("store.redis.ttl must not be negative")
	}
	if c.Store.Encryption.Key != "" {
		if _, _, err := c.Store.Encryption.Keys(); err != nil {
			return err
		}
	} else if len(c.Store.Encryption.FallbackKeys) > 0 {
		return errors.New("store.encryption.fallback_keys requires store.encryption.key")
	}
	if c.Run.MaxSteps < 0 {
		return errors.New("run.max_steps must not be negative")
	}
	if utf8.RuneCountInString(c.Run.Blank) != 1 {
		return fmt.Errorf("run.blank must be a single character, got %q", c.Run.Blank)
	}
	return nil
}
