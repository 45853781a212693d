package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Export   ExportConfig   `yaml:"export"`
	Identity IdentityConfig `yaml:"identity"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ExportConfig struct {
	DataDir   string `yaml:"data_dir"`
	StripHTML bool   `yaml:"strip_html"`
}

type IdentityConfig struct {
	// Self is how the user appears in the FROM/TO columns of messages.csv.
	Self string `yaml:"self"`
}

type ScoringConfig struct {
	HalfLifeDays      float64 `yaml:"half_life_days"`
	Workers           int     `yaml:"workers"`
	ResurrectionLimit int     `yaml:"resurrection_limit"`
}

type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
	TopN      int    `yaml:"top_n"`
	Style     string `yaml:"style"`
	WordWrap  int    `yaml:"word_wrap"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a config with every field set. Load unmarshals over it, so
// an explicit zero for resurrection_limit or top_n survives and means no cap.
func Default() *Config {
	cfg := &Config{
		Scoring: ScoringConfig{ResurrectionLimit: 20},
		Report:  ReportConfig{TopN: 15},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Export.DataDir != "" {
		cfg.Export.DataDir = expandPath(cfg.Export.DataDir)
	}
	if cfg.Report.OutputDir != "" {
		cfg.Report.OutputDir = expandPath(cfg.Report.OutputDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Identity.Self == "" {
		c.Identity.Self = "Me"
	}
	if c.Scoring.HalfLifeDays == 0 {
		c.Scoring.HalfLifeDays = 180
	}
	if c.Scoring.Workers == 0 {
		c.Scoring.Workers = 4
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "output"
	}
	if c.Report.Style == "" {
		c.Report.Style = "dark"
	}
	if c.Report.WordWrap == 0 {
		c.Report.WordWrap = 100
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LINKEDINTEL_DATA_DIR"); v != "" {
		cfg.Export.DataDir = v
	}
	if v := os.Getenv("LINKEDINTEL_SELF"); v != "" {
		cfg.Identity.Self = v
	}
	if v := os.Getenv("LINKEDINTEL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LINKEDINTEL_HALF_LIFE_DAYS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.HalfLifeDays = f
		}
	}
}

// Validate rejects values the scoring engine cannot work with.
func (c *Config) Validate() error {
	if c.Scoring.HalfLifeDays <= 0 {
		return fmt.Errorf("%w: scoring.half_life_days must be > 0", ErrInvalidConfig)
	}
	if c.Scoring.Workers < 0 {
		return fmt.Errorf("%w: scoring.workers must be >= 0", ErrInvalidConfig)
	}
	if c.Scoring.ResurrectionLimit < 0 {
		return fmt.Errorf("%w: scoring.resurrection_limit must be >= 0", ErrInvalidConfig)
	}
	if c.Report.TopN < 0 {
		return fmt.Errorf("%w: report.top_n must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// ErrConfigExists is returned by Save when path is taken and overwrite is off.
var ErrConfigExists = errors.New("config file already exists")

// Save writes cfg as YAML to path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func Save(cfg *Config, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}

// expandPath resolves a leading "~" or "~/" against the home directory.
// "~user" forms are returned unchanged.
func expandPath(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// DefaultConfigPath is linkedintel/config.yaml under the user config
// directory ($XDG_CONFIG_HOME or ~/.config on Linux).
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "linkedintel.yaml"
	}
	return filepath.Join(dir, "linkedintel", "config.yaml")
}
