package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment override, e.g. COPA_LOGGING_LEVEL.
// Fields carry no envconfig alt names so that bare variables such as PATH
// are never consulted.
const EnvPrefix = "COPA"

// Config represents the complete application configuration
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatasetConfig describes the source export and which rows to keep
type DatasetConfig struct {
	Path          string   `yaml:"path"`
	Jurisdictions []string `yaml:"jurisdictions"`
	Delimiter     string   `yaml:"delimiter"`
}

// AnalysisConfig contains query defaults
type AnalysisConfig struct {
	TopK int `yaml:"top_k" split_words:"true"`
	// LegacyCharacteristicFallback maps unknown characteristic names to the
	// age (complainants) or years-on-force (officers) vocabulary instead of
	// rejecting them.
	LegacyCharacteristicFallback bool `yaml:"legacy_characteristic_fallback" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// OutputConfig contains report and chart locations
type OutputConfig struct {
	ReportsDir string `yaml:"reports_dir" split_words:"true"`
	ChartsDir  string `yaml:"charts_dir" split_words:"true"`
	Color      string `yaml:"color"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TracingEnabled  bool    `yaml:"tracing_enabled" split_words:"true"`
	TraceExporter   string  `yaml:"trace_exporter" split_words:"true"`
	TraceFile       string  `yaml:"trace_file" split_words:"true"`
	SampleRatio     float64 `yaml:"sample_ratio" split_words:"true"`
	MetricsTextfile string  `yaml:"metrics_textfile" split_words:"true"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the first file found in the usual locations when path is empty), then
// COPA_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile := path
	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment wins over the file; fields without a variable are untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if len(c.Dataset.Jurisdictions) == 0 {
		return fmt.Errorf("at least one jurisdiction must be specified")
	}
	for i, j := range c.Dataset.Jurisdictions {
		c.Dataset.Jurisdictions[i] = strings.TrimSpace(j)
		if c.Dataset.Jurisdictions[i] == "" {
			return fmt.Errorf("jurisdiction %d is empty", i)
		}
	}

	if len([]rune(c.Dataset.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Dataset.Delimiter)
	}

	if c.Analysis.TopK < 0 {
		return fmt.Errorf("analysis top_k must not be negative: %d", c.Analysis.TopK)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode: %s", c.Output.Color)
	}

	switch c.Telemetry.TraceExporter {
	case "stdout", "none":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Telemetry.TraceExporter)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("sample ratio must be within [0,1]: %v", c.Telemetry.SampleRatio)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"copa.yaml",
		"configs/copa.yaml",
		"../configs/copa.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Jurisdictions: []string{"IPRA", "COPA"},
			Delimiter:     ",",
		},
		Analysis: AnalysisConfig{
			TopK: DefaultTopK,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Output: OutputConfig{
			ReportsDir: DefaultReportsDir,
			ChartsDir:  DefaultChartsDir,
			Color:      "auto",
		},
		Telemetry: TelemetryConfig{
			TracingEnabled: false,
			TraceExporter:  "none",
			SampleRatio:    1.0,
		},
	}
}
