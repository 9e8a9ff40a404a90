// Package config provides configuration loading for the expression tools.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tool configuration parameters.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Output   OutputConfig   `yaml:"output"`
	Optimize OptimizeConfig `yaml:"optimize"`
}

// EngineConfig holds the expression engine flags.
type EngineConfig struct {
	Epistasis  bool  `yaml:"epistasis"`  // Multi-locus interactions and QTL aggregation
	Pleiotropy bool  `yaml:"pleiotropy"` // Cross-trait trade-offs
	Seed       int64 `yaml:"seed"`       // Expression jitter seed
}

// CatalogConfig selects the gene/strain catalog.
type CatalogConfig struct {
	Path    string   `yaml:"path"`    // Catalog JSON path (empty = embedded default)
	Strains []string `yaml:"strains"` // Strain IDs to process (empty = all in catalog)
}

// SweepConfig defines the environment grid swept by phenosim.
type SweepConfig struct {
	Temperature RangeConfig `yaml:"temperature"`
	Light       RangeConfig `yaml:"light"`
	Humidity    RangeConfig `yaml:"humidity"`
	CO2         RangeConfig `yaml:"co2"`
}

// RangeConfig is an inclusive min..max range with a step size.
type RangeConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Values expands the range into its grid points. A non-positive step or an
// inverted range collapses to the single Min value.
func (r RangeConfig) Values() []float64 {
	if r.Step <= 0 || r.Max < r.Min {
		return []float64{r.Min}
	}
	var vs []float64
	for v := r.Min; v <= r.Max+1e-9; v += r.Step {
		vs = append(vs, v)
	}
	return vs
}

// OutputConfig holds result output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory (empty = output disabled)
}

// OptimizeConfig holds envopt's search parameters.
type OptimizeConfig struct {
	Strain         string  `yaml:"strain"`          // Strain whose fitness is maximized
	MaxEvaluations int     `yaml:"max_evaluations"` // Evaluation budget for the optimizer
	InitialSpread  float64 `yaml:"initial_spread"`  // Initial CMA-ES step size in normalized space
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
