package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	DBPath       string        `yaml:"db_path"`
	CatalogPath  string        `yaml:"catalog_path"`
	RegistryURL  string        `yaml:"registry_url"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int           `yaml:"max_body_bytes"`
}

func defaults() Config {
	return Config{
		Addr:         ":8080",
		DBPath:       "./data/sessions.db",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

// Load builds the configuration from defaults, an optional YAML file, a
// .env file in the working directory and finally the process environment.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config.yaml: %w", err)
		}
	}

	// A missing .env is the normal case outside development.
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if v, ok := os.LookupEnv("MANDATE_DB_PATH"); ok {
		c.DBPath = v
	}
	if v := os.Getenv("MANDATE_CATALOG_PATH"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("CATALOG_REGISTRY_URL"); v != "" {
		c.RegistryURL = v
	}
	if v := os.Getenv("MANDATE_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MANDATE_MAX_BODY_BYTES: %w", err)
		}
		c.MaxBodyBytes = n
	}
	return nil
}

func (c *Config) Normalize() {
	c.Addr = strings.TrimSpace(c.Addr)
	c.DBPath = strings.TrimSpace(c.DBPath)
	c.CatalogPath = strings.TrimSpace(c.CatalogPath)
	c.RegistryURL = strings.TrimSpace(c.RegistryURL)
	if c.Addr != "" && !strings.Contains(c.Addr, ":") {
		c.Addr = ":" + c.Addr
	}
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.CatalogPath != "" && c.RegistryURL != "" {
		return errors.New("catalog_path and registry_url are mutually exclusive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}
