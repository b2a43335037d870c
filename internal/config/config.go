package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents runtime configuration for the service.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Gemini  GeminiConfig  `json:"gemini"`
	Upload  UploadConfig  `json:"upload"`
	Logging LoggingConfig `json:"logging"`
}

type ServerConfig struct {
	Address string `json:"address"`
}

// GeminiConfig holds credentials and tuning for the generation API.
type GeminiConfig struct {
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Timeout returns the bound applied to every upstream generation call.
func (g GeminiConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 90 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

type UploadConfig struct {
	Dir       string `json:"dir"`
	MaxSizeMB int64  `json:"max_size_mb"`
}

// MaxBytes returns the upload size ceiling in bytes.
func (u UploadConfig) MaxBytes() int64 { return u.MaxSizeMB << 20 }

type LoggingConfig struct {
	Level      string `json:"level"`
	Pretty     bool   `json:"pretty"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Address: ":8080"},
		Gemini: GeminiConfig{Model: "gemini-2.0-flash"},
		Upload: UploadConfig{Dir: "./data/uploads", MaxSizeMB: 10},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Load reads configuration from the provided JSON file, falling back to
// config.json when it exists, then applies environment overrides. A missing
// default file is not an error; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if path == "" {
		path = "config.json"
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	switch {
	case err == nil:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
		// env-only configuration
	default:
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Address = ":" + port
	}
	c.Gemini.APIKey = getenv("GEMINI_API_KEY", c.Gemini.APIKey)
	c.Gemini.Model = getenv("GEMINI_MODEL", c.Gemini.Model)
	c.Gemini.TimeoutSeconds = getenvInt("GEMINI_TIMEOUT_SECONDS", c.Gemini.TimeoutSeconds)
	c.Upload.Dir = getenv("UPLOAD_DIR", c.Upload.Dir)
	c.Upload.MaxSizeMB = int64(getenvInt("UPLOAD_MAX_SIZE_MB", int(c.Upload.MaxSizeMB)))
	c.Logging.Level = getenv("LOG_LEVEL", c.Logging.Level)
	if pretty := os.Getenv("LOG_PRETTY"); pretty != "" {
		c.Logging.Pretty = pretty == "1" || pretty == "true"
	}
	c.Logging.File = getenv("LOG_FILE", c.Logging.File)
}

// Validate reports configuration the service cannot start without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return errors.New("gemini api key is not configured (set GEMINI_API_KEY or gemini.api_key)")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
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
