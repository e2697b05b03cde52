package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the concierge API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Search   SearchConfig   `yaml:"search"`
	Schema   SchemaConfig   `yaml:"schema"`
	Storage  StorageConfig  `yaml:"storage"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LLMConfig holds completion provider settings (OpenAI-compatible API).
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

// SearchConfig holds search engine connection settings.
type SearchConfig struct {
	Host                string `yaml:"host"`
	APIKey              string `yaml:"api_key"`
	IndexUID            string `yaml:"index_uid"`
	TimeoutSec          int    `yaml:"timeout_sec"`
	TaskTimeoutSec      int    `yaml:"task_timeout_sec"`
	ReadinessTimeoutSec int    `yaml:"readiness_timeout_sec"`
	PollIntervalMS      int    `yaml:"poll_interval_ms"`
}

// SchemaConfig holds the initial filterable/sortable attribute sets.
// The sets grow at runtime when the engine rejects undeclared attributes.
type SchemaConfig struct {
	Filterable []string `yaml:"filterable"`
	Sortable   []string `yaml:"sortable"`
}

// StorageConfig holds the room source settings.
type StorageConfig struct {
	RoomsFile string `yaml:"rooms_file"`
}

// SessionsConfig holds conversation session retention settings.
type SessionsConfig struct {
	TTLMin           int `yaml:"ttl_min"`
	SweepIntervalSec int `yaml:"sweep_interval_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "meta-llama/llama-3-8b-instruct"
	}
	if c.LLM.Temperature <= 0 {
		c.LLM.Temperature = 0.1
	}
	if c.LLM.TimeoutSec <= 0 {
		c.LLM.TimeoutSec = 8
	}
	if c.Search.IndexUID == "" {
		c.Search.IndexUID = "rooms"
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 5
	}
	if c.Search.TaskTimeoutSec <= 0 {
		c.Search.TaskTimeoutSec = 30
	}
	if c.Search.ReadinessTimeoutSec <= 0 {
		c.Search.ReadinessTimeoutSec = 30
	}
	if c.Search.PollIntervalMS <= 0 {
		c.Search.PollIntervalMS = 250
	}
	if len(c.Schema.Filterable) == 0 {
		c.Schema.Filterable = []string{"location", "guests", "price", "available"}
	}
	if len(c.Schema.Sortable) == 0 {
		c.Schema.Sortable = []string{"price"}
	}
	if c.Storage.RoomsFile == "" {
		c.Storage.RoomsFile = filepath.Join("data", "rooms.json")
	}
	if c.Sessions.TTLMin <= 0 {
		c.Sessions.TTLMin = 30
	}
	if c.Sessions.SweepIntervalSec <= 0 {
		c.Sessions.SweepIntervalSec = 60
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if c.Search.Host == "" {
		return fmt.Errorf("search.host is required")
	}
	if !strings.HasPrefix(c.Search.Host, "http://") && !strings.HasPrefix(c.Search.Host, "https://") {
		return fmt.Errorf("search.host must be an http(s) URL, got %q", c.Search.Host)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
