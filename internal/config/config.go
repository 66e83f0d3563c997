package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"go-doc-inspector/pkg/models"
)

// AnalysisConfig holds the per-run analysis knobs. Immutable once an
// analysis call has started.
type AnalysisConfig struct {
	Method             models.Method `yaml:"method"`
	EdgeWidthThreshold float64       `yaml:"edge_width_threshold"`
	VarianceThreshold  float64       `yaml:"variance_threshold"`
	Debug              bool          `yaml:"debug"`
}

// CapabilityConfig governs waits on external capability loads
type CapabilityConfig struct {
	LoadTimeout  time.Duration `yaml:"load_timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// OCRConfig enables text extraction for raster-only documents
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

// AzureConfig holds blob storage credentials; empty means disabled
type AzureConfig struct {
	AccountName string `yaml:"account_name"`
	AccountKey  string `yaml:"account_key"`
}

type Config struct {
	Host               string        `yaml:"host"`
	Port               string        `yaml:"port"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	DocumentTimeout    time.Duration `yaml:"document_timeout"`
	MaxRequestBodySize int64         `yaml:"max_request_body_size"`
	HistoryDBPath      string        `yaml:"history_db_path"`

	Analysis   AnalysisConfig   `yaml:"analysis"`
	Capability CapabilityConfig `yaml:"capability"`
	OCR        OCRConfig        `yaml:"ocr"`
	Azure      AzureConfig      `yaml:"azure"`
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// DefaultAnalysisConfig returns the documented analysis defaults
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Method:             models.MethodEdge,
		EdgeWidthThreshold: 0.5,
		VarianceThreshold:  120.0,
		Debug:              false,
	}
}

// LoadFromEnv builds a Config from environment variables with validated defaults
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		DocumentTimeout:    parseDurationOrDefault("DOCUMENT_TIMEOUT", 120*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 50*1024*1024), // 50MB
		HistoryDBPath:      getEnvOrDefault("HISTORY_DB_PATH", ""),
		Analysis:           DefaultAnalysisConfig(),
		Capability: CapabilityConfig{
			LoadTimeout:  parseDurationOrDefault("CAPABILITY_LOAD_TIMEOUT", 12*time.Second),
			PollInterval: parseDurationOrDefault("CAPABILITY_POLL_INTERVAL", 100*time.Millisecond),
		},
		OCR: OCRConfig{
			Enabled:  getEnvOrDefault("OCR_ENABLED", "false") == "true",
			Language: getEnvOrDefault("OCR_LANGUAGE", "eng"),
		},
		Azure: AzureConfig{
			AccountName: getEnvOrDefault("AZURE_ACCOUNT_NAME", ""),
			AccountKey:  getEnvOrDefault("AZURE_ACCOUNT_KEY", ""),
		},
	}

	if m := os.Getenv("ANALYSIS_METHOD"); m != "" {
		cfg.Analysis.Method = models.Method(strings.TrimSpace(m))
	}
	if v := os.Getenv("EDGE_WIDTH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			cfg.Analysis.EdgeWidthThreshold = f
		}
	}
	if v := os.Getenv("VARIANCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			cfg.Analysis.VarianceThreshold = f
		}
	}
	cfg.Analysis.Debug = os.Getenv("ANALYSIS_DEBUG") == "true"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile overlays a YAML config file on top of env-derived defaults
func LoadFromFile(path string) (*Config, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects out-of-range settings
func (c *Config) Validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.DocumentTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, document=%s)",
			c.RequestTimeout, c.DocumentTimeout)
	}
	if !c.Analysis.Method.Valid() {
		return fmt.Errorf("invalid analysis method: %q", c.Analysis.Method)
	}
	if c.Analysis.EdgeWidthThreshold <= 0 {
		return fmt.Errorf("edge width threshold must be > 0 (got %f)", c.Analysis.EdgeWidthThreshold)
	}
	if c.Analysis.VarianceThreshold <= 0 {
		return fmt.Errorf("variance threshold must be > 0 (got %f)", c.Analysis.VarianceThreshold)
	}
	if c.Capability.LoadTimeout <= 0 || c.Capability.PollInterval <= 0 {
		return fmt.Errorf("capability load timeout and poll interval must be > 0")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
