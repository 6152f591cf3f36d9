package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. HOOPS_SERVER_PORT.
const EnvPrefix = "HOOPS"

// ConfigFileEnv names an explicit config file, overriding the search locations.
const ConfigFileEnv = "HOOPS_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	// AllowedOrigins lists browser origins allowed to call the API. Empty allows any.
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// DataConfig describes where the season files live and how results are sized.
type DataConfig struct {
	RegularSource string `yaml:"regular_source" envconfig:"REGULAR_SOURCE"`
	PlayoffSource string `yaml:"playoff_source" envconfig:"PLAYOFF_SOURCE"`
	Delimiter     string `yaml:"delimiter" envconfig:"DELIMITER"`
	// FetchTimeout bounds HTTP fetches of the season files. Zero waits forever.
	FetchTimeout  time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT"`
	TableSize     int           `yaml:"table_size" envconfig:"TABLE_SIZE"`
	ChartSize     int           `yaml:"chart_size" envconfig:"CHART_SIZE"`
	HistogramBins int           `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS"`
	ImpactSize    int           `yaml:"impact_size" envconfig:"IMPACT_SIZE"`
	RadarSize     int           `yaml:"radar_size" envconfig:"RADAR_SIZE"`
	LeadersSize   int           `yaml:"leaders_size" envconfig:"LEADERS_SIZE"`
	MinAttempts   float64       `yaml:"min_attempts" envconfig:"MIN_ATTEMPTS"`
	ShotSample    int           `yaml:"shot_sample" envconfig:"SHOT_SAMPLE"`
	// ShotSeed seeds the synthetic shot sampler. Zero picks a random seed.
	ShotSeed  uint64 `yaml:"shot_seed" envconfig:"SHOT_SEED"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	EnableTracing  bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	EnableMetrics  bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// Load builds the configuration from defaults, then the YAML file if one is
// found, then HOOPS_* environment variables. Later sources win.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Data.RegularSource == "" || c.Data.PlayoffSource == "" {
		return fmt.Errorf("both regular and playoff sources must be set")
	}
	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	if c.Data.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout must not be negative")
	}
	for name, v := range map[string]int{
		"table size":     c.Data.TableSize,
		"chart size":     c.Data.ChartSize,
		"histogram bins": c.Data.HistogramBins,
		"impact size":    c.Data.ImpactSize,
		"radar size":     c.Data.RadarSize,
		"leaders size":   c.Data.LeadersSize,
		"shot sample":    c.Data.ShotSample,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive when enabled")
	}

	switch c.Telemetry.TraceExporter {
	case "stdout", "none":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Telemetry.TraceExporter)
	}
	switch c.Telemetry.MetricExporter {
	case "prometheus", "none":
	default:
		return fmt.Errorf("unsupported metric exporter: %s", c.Telemetry.MetricExporter)
	}

	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "console"
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" when none exists
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  10 * time.Second,
		},
		Data: DataConfig{
			RegularSource: "data/regular.csv",
			PlayoffSource: "data/playoff.csv",
			Delimiter:     ";",
			TableSize:     20,
			ChartSize:     10,
			HistogramBins: 20,
			ImpactSize:    15,
			RadarSize:     5,
			LeadersSize:   20,
			MinAttempts:   5,
			ShotSample:    50,
			ExportDir:     "reports",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "console",
			FilePath:    "logs/app.log",
			Development: false,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "hoops-stats",
			Environment:    "development",
			EnableTracing:  false,
			EnableMetrics:  true,
			TraceExporter:  "stdout",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     100,
			Burst:   50,
		},
	}
}
