package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	IndexPath string `yaml:"index_path"`

	OllamaURL        string `yaml:"ollama_url"`
	OllamaGenModel   string `yaml:"ollama_gen_model"`
	OllamaEmbedModel string `yaml:"ollama_embed_model"`

	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
	MaxAttempts  int `yaml:"max_attempts"`

	BreakerEnabled     bool          `yaml:"breaker_enabled"`
	BreakerOpenTimeout time.Duration `yaml:"breaker_open_timeout"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, then environment overrides. A missing file at the
// default location is fine; an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = mustEnv("RAGKB_CONFIG", "ragkb.yaml")
	}
	if err := cfg.applyFile(path, explicit); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		IndexPath: "./data/index",

		OllamaURL:        "http://localhost:11434",
		OllamaGenModel:   "llama3",
		OllamaEmbedModel: "nomic-embed-text",

		ChunkSize:    1000,
		ChunkOverlap: 200,
		TopK:         3,
		MaxAttempts:  2,

		BreakerEnabled:     true,
		BreakerOpenTimeout: 30 * time.Second,

		RateLimitRPS:   10,
		RateLimitBurst: 20,
	}
}

func (c *Config) applyFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIPort = mustEnv("API_PORT", c.APIPort)
	c.LogLevel = mustEnv("LOG_LEVEL", c.LogLevel)

	c.IndexPath = mustEnv("INDEX_PATH", c.IndexPath)

	c.OllamaURL = mustEnv("OLLAMA_URL", c.OllamaURL)
	c.OllamaGenModel = mustEnv("OLLAMA_GEN_MODEL", c.OllamaGenModel)
	c.OllamaEmbedModel = mustEnv("OLLAMA_EMBED_MODEL", c.OllamaEmbedModel)

	c.ChunkSize = mustEnvInt("CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = mustEnvInt("CHUNK_OVERLAP", c.ChunkOverlap)
	c.TopK = mustEnvInt("TOP_K", c.TopK)
	c.MaxAttempts = mustEnvInt("MAX_ATTEMPTS", c.MaxAttempts)

	c.BreakerEnabled = mustEnvBool("BREAKER_ENABLED", c.BreakerEnabled)
	c.BreakerOpenTimeout = mustEnvDuration("BREAKER_OPEN_TIMEOUT", c.BreakerOpenTimeout)

	c.RateLimitRPS = mustEnvFloat("RATE_LIMIT_RPS", c.RateLimitRPS)
	c.RateLimitBurst = mustEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst)
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
