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

// Config holds the foodsearch gateway configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Backend   BackendConfig   `yaml:"backend"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Image     ImageConfig     `yaml:"image"`
	Cache     CacheConfig     `yaml:"cache"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// BackendConfig holds vector backend connection settings.
type BackendConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	GRPCPort   int    `yaml:"grpc_port"`
	Scheme     string `yaml:"scheme"` // http, https (default: http)
	Collection string `yaml:"collection"`
}

// EmbeddingConfig holds embedding-provider credentials forwarded to the
// backend at connection time. The gateway never calls an embedding API itself.
type EmbeddingConfig struct {
	CohereAPIKey string `yaml:"cohere_api_key"`
}

// SearchConfig holds query and result-shaping settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	TopResults   int `yaml:"top_results"`
	RowSize      int `yaml:"row_size"`
}

// ImageConfig holds canonical image settings.
type ImageConfig struct {
	TargetWidth    int   `yaml:"target_width"`
	TargetHeight   int   `yaml:"target_height"`
	JPEGQuality    int   `yaml:"jpeg_quality"`
	OversizePx     int   `yaml:"oversize_px"`
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// CacheConfig holds optional search-result cache settings. The cache is off
// unless addrs is set.
type CacheConfig struct {
	Addrs     []string `yaml:"addrs"`
	Password  string   `yaml:"password"`
	TTLSec    int      `yaml:"ttl_sec"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

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
	if c.Backend.Port <= 0 {
		c.Backend.Port = 8080
	}
	if c.Backend.GRPCPort <= 0 {
		c.Backend.GRPCPort = 50051
	}
	if c.Backend.Scheme == "" {
		c.Backend.Scheme = "http"
	}
	if c.Backend.Collection == "" {
		c.Backend.Collection = "FoodsMultiModal"
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 10
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 50
	}
	if c.Search.TopResults <= 0 {
		c.Search.TopResults = 3
	}
	if c.Search.RowSize <= 0 {
		c.Search.RowSize = 3
	}
	if c.Image.TargetWidth <= 0 {
		c.Image.TargetWidth = 400
	}
	if c.Image.TargetHeight <= 0 {
		c.Image.TargetHeight = 400
	}
	if c.Image.JPEGQuality <= 0 {
		c.Image.JPEGQuality = 85
	}
	if c.Image.OversizePx <= 0 {
		c.Image.OversizePx = 5000
	}
	if c.Image.MaxUploadBytes <= 0 {
		c.Image.MaxUploadBytes = 10 << 20
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "foodsearch:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Backend.Host == "" {
		return fmt.Errorf("backend.host is required")
	}
	switch c.Backend.Scheme {
	case "http", "https":
		// ok
	default:
		return fmt.Errorf("backend.scheme must be \"http\" or \"https\", got %q", c.Backend.Scheme)
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return fmt.Errorf("image.jpeg_quality must be between 1 and 100, got %d", c.Image.JPEGQuality)
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf(
			"search.default_limit %d exceeds search.max_limit %d",
			c.Search.DefaultLimit, c.Search.MaxLimit,
		)
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
