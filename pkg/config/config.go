// Package config handles report-generator configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/r3d91ll/apreport/pkg/errors"
)

// Config is the root configuration structure.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Report   ReportConfig   `yaml:"report"`
	Style    StyleConfig    `yaml:"style"`
	Log      LogConfig      `yaml:"log"`
}

// PathsConfig holds output directory and file settings.
type PathsConfig struct {
	// ReportsDir receives one PDF per processed row.
	ReportsDir string `yaml:"reports_dir"`

	// ImagesDir receives chart PNGs and downloaded logos.
	ImagesDir string `yaml:"images_dir"`

	// OutputFile is the result spreadsheet (input rows plus report paths).
	// Format follows the extension (.xlsx or .csv).
	OutputFile string `yaml:"output_file"`
}

// FetchConfig holds logo download settings.
type FetchConfig struct {
	// TimeoutSeconds bounds the single best-effort logo download.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// RatePerSecond limits outbound logo requests across the batch.
	// 0 disables rate limiting.
	RatePerSecond float64 `yaml:"rate_per_second"`
}

// PipelineConfig holds batch processing settings.
type PipelineConfig struct {
	// Workers is the number of rows processed concurrently.
	// 1 preserves strictly sequential processing; output order is
	// input order regardless of this setting.
	Workers int `yaml:"workers"`
}

// ReportConfig holds PDF layout settings.
type ReportConfig struct {
	// Template selects the page layout variant: "classic" or "compact".
	Template string `yaml:"template"`

	// Prefix is prepended to report filenames: {prefix}_{company}.pdf.
	Prefix string `yaml:"prefix"`

	// FooterNote is the right-aligned footer text on every page.
	FooterNote string `yaml:"footer_note"`
}

// StyleConfig holds the chart and report color palette as hex strings.
// Brand colors from the input sheet override Primary and Secondary per row.
type StyleConfig struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
	Warn      string `yaml:"warn"`
	Muted     string `yaml:"muted"`
	Light     string `yaml:"light"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zap level string: debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			ReportsDir: "reports",
			ImagesDir:  "img",
			OutputFile: "fin_data_with_reports.xlsx",
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 15,
			RatePerSecond:  4,
		},
		Pipeline: PipelineConfig{
			Workers: 1,
		},
		Report: ReportConfig{
			Template:   "classic",
			Prefix:     "AP_Report",
			FooterNote: "Based on Q4 2024 data",
		},
		Style: StyleConfig{
			Primary:   "#001F3F",
			Secondary: "#2ECC40",
			Accent:    "#FF851B",
			Warn:      "#FF4136",
			Muted:     "#AAAAAA",
			Light:     "#F0F0F0",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ConfigWrap(err, apperrors.ErrConfigReadFailed, "failed to read config")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.ConfigWrap(err, apperrors.ErrConfigParseFailed, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if c.Pipeline.Workers < 1 {
		return apperrors.Configf(apperrors.ErrConfigInvalid,
			"pipeline.workers must be >= 1, got %d", c.Pipeline.Workers)
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return apperrors.Configf(apperrors.ErrConfigInvalid,
			"fetch.timeout_seconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.RatePerSecond < 0 {
		return apperrors.Configf(apperrors.ErrConfigInvalid,
			"fetch.rate_per_second must not be negative, got %v", c.Fetch.RatePerSecond)
	}
	switch c.Report.Template {
	case "classic", "compact":
	default:
		return apperrors.Configf(apperrors.ErrConfigInvalid,
			"report.template must be classic or compact, got %q", c.Report.Template)
	}
	ext := strings.ToLower(filepath.Ext(c.Paths.OutputFile))
	if ext != ".xlsx" && ext != ".csv" {
		return apperrors.Configf(apperrors.ErrConfigInvalid,
			"paths.output_file must end in .xlsx or .csv, got %q", c.Paths.OutputFile)
	}
	return nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.ConfigWrap(err, apperrors.ErrConfigWriteFailed, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return apperrors.ConfigWrap(err, apperrors.ErrConfigWriteFailed, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.ConfigWrap(err, apperrors.ErrConfigWriteFailed, "failed to write config file")
	}
	return nil
}

// DefaultConfigPath returns the default config file path.
// Config is application-level, stored with the application.
func DefaultConfigPath() string {
	// First check for config in current working directory
	if _, err := os.Stat("apreport.yaml"); err == nil {
		return "apreport.yaml"
	}
	// Then check for config/ subdirectory
	if _, err := os.Stat("config/apreport.yaml"); err == nil {
		return "config/apreport.yaml"
	}
	// Default to apreport.yaml in current directory
	return "apreport.yaml"
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists
	}

	cfg := Default()
	return cfg.Save(path)
}

// String summarizes the effective configuration for startup logging.
func (c *Config) String() string {
	return fmt.Sprintf("reports=%s img=%s out=%s workers=%d template=%s",
		c.Paths.ReportsDir, c.Paths.ImagesDir, c.Paths.OutputFile,
		c.Pipeline.Workers, c.Report.Template)
}
