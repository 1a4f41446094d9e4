package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/contalivre/contalivre/internal/fiscal"
	"github.com/contalivre/contalivre/internal/model"
)

// FileName is the project configuration file.
const FileName = "contalivre.yaml"

// Environment overrides.
const (
	EnvCurrency  = "CONTALIVRE_CURRENCY"
	EnvTolerance = "CONTALIVRE_TOLERANCE"
	EnvYearStart = "CONTALIVRE_FISCAL_YEAR_START"
)

// Config represents the top-level contalivre.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Fiscal    FiscalConfig    `yaml:"fiscal"`
	Currency  string          `yaml:"currency"`
	Tolerance decimal.Decimal `yaml:"tolerance"`
	Inflation InflationConfig `yaml:"inflation"`
	Paths     PathsConfig     `yaml:"paths"`
}

// BusinessConfig identifies the reporting entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	CUIT       string `yaml:"cuit,omitempty"`
	EntityType string `yaml:"entity_type"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// InflationConfig names the price-index series used for restatement.
type InflationConfig struct {
	Series string `yaml:"series"`
}

// PathsConfig locates the adjustment inputs relative to the project root.
// The chart and journal live at fixed paths.
type PathsConfig struct {
	Indices   string `yaml:"indices"`
	RT6       string `yaml:"rt6"`
	RT17      string `yaml:"rt17"`
	Overrides string `yaml:"monetary_overrides"`
}

// Load reads a contalivre.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadProject reads root/contalivre.yaml and applies overrides from
// root/.env and the process environment, the latter taking precedence.
func LoadProject(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}

	env, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment variables lookup finds.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCurrency); ok && v != "" {
		c.Currency = strings.ToUpper(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvTolerance); ok && v != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTolerance, err)
		}
		c.Tolerance = d
	}
	if v, ok := lookup(EnvYearStart); ok && v != "" {
		c.Fiscal.YearStart = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks the fields the engine depends on.
func (c *Config) Validate() error {
	if _, err := fiscal.ForYear(2000, c.Fiscal.YearStart); err != nil {
		return err
	}
	if c.Tolerance.IsNegative() {
		return fmt.Errorf("tolerance must not be negative: %s", c.Tolerance)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be an ISO 4217 code: %q", c.Currency)
	}
	return nil
}

// Period returns the fiscal context closing in closingYear.
func (c *Config) Period(closingYear int) (fiscal.Context, error) {
	return fiscal.ForYear(closingYear, c.Fiscal.YearStart)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Currency:  "ARS",
		Tolerance: model.Tolerance,
		Inflation: InflationConfig{
			Series: "IPC FACPCE",
		},
		Paths: PathsConfig{
			Indices:   "indices/ipc.csv",
			RT6:       "adjustments/rt6.yaml",
			RT17:      "adjustments/rt17.yaml",
			Overrides: "adjustments/monetary-overrides.yaml",
		},
	}
}
