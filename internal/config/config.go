package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr    = "0.0.0.0:3000"
	DefaultUploadDir     = "uploads"
	DefaultPartialTTL    = 24 * time.Hour
	DefaultSweepInterval = 30 * time.Minute
)

type Config struct {
	ListenAddr        string        `yaml:"listen_addr" json:"listen_addr"`
	UploadDir         string        `yaml:"upload_dir" json:"upload_dir"`
	MaxFileSize       string        `yaml:"max_file_size" json:"max_file_size"`
	AllowedExtensions []string      `yaml:"allowed_extensions" json:"allowed_extensions"`
	UniqueKeys        bool          `yaml:"unique_keys" json:"unique_keys"`
	PartialTTL        time.Duration `yaml:"partial_ttl" json:"partial_ttl"`
	SweepInterval     time.Duration `yaml:"sweep_interval" json:"sweep_interval"`
	LogLevel          string        `yaml:"log_level" json:"log_level"`
	LogFormat         string        `yaml:"log_format" json:"log_format"`
}

// Default возвращает конфигурацию, совпадающую с поведением сервиса без файла настроек.
func Default() *Config {
	return &Config{
		ListenAddr:    DefaultListenAddr,
		UploadDir:     DefaultUploadDir,
		PartialTTL:    DefaultPartialTTL,
		SweepInterval: DefaultSweepInterval,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load подхватывает .env, читает YAML (если он есть), применяет ENV-переопределения и валидирует результат.
func Load() (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	return LoadFile(getenv("CONFIG_PATH", "./config.yaml"))
}

// LoadFile читает конфигурацию из path. Отсутствующий файл не считается ошибкой.
func LoadFile(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		c.MaxFileSize = v
	}
	if v := os.Getenv("ALLOWED_EXTENSIONS"); v != "" {
		c.AllowedExtensions = splitComma(v)
	}
	if v := os.Getenv("UNIQUE_KEYS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("UNIQUE_KEYS: %w", err)
		}
		c.UniqueKeys = b
	}
	if v := os.Getenv("PARTIAL_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PARTIAL_TTL: %w", err)
		}
		c.PartialTTL = d
	}
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SWEEP_INTERVAL: %w", err)
		}
		c.SweepInterval = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}

	return nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is empty")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("upload_dir is empty")
	}
	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}
	if c.PartialTTL < 0 || c.SweepInterval < 0 {
		return fmt.Errorf("partial_ttl and sweep_interval must not be negative")
	}

	return nil
}

// MaxFileSizeBytes разбирает max_file_size ("10 MB", "512KiB", "1048576"). 0 — без ограничения.
func (c *Config) MaxFileSizeBytes() (int64, error) {
	s := strings.TrimSpace(c.MaxFileSize)
	if s == "" {
		return 0, nil
	}

	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("max_file_size: %w", err)
	}
	if n > uint64(1<<63-1) {
		return 0, fmt.Errorf("max_file_size: %q is too large", s)
	}

	return int64(n), nil
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
