package model

import (
	"fmt"
	"runtime"
	"time"
)

// Config is the full configuration surface consumed by the engine and CLI
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// AnalysisConfig controls the conformance and instantiation passes
type AnalysisConfig struct {
	// BloatThreshold separates acceptable template variation from flagged
	// bloat. Must be >= 1.
	BloatThreshold int `yaml:"bloat_threshold" mapstructure:"bloat_threshold"`
	// TreatCyclesAsError makes inheritance-cycle findings errors; when
	// false they are reported as warnings but the cycle members are
	// still marked non-conforming.
	TreatCyclesAsError bool `yaml:"treat_cycles_as_error" mapstructure:"treat_cycles_as_error"`
	// StrictBases reports a finding for bases not declared in the unit.
	// Off by default: the input contract promises a complete unit, but a
	// partial one must degrade to findings, not crashes.
	StrictBases bool `yaml:"strict_bases" mapstructure:"strict_bases"`
	// Workers bounds concurrent classification tasks. 0 means NumCPU.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the analysis-result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			BloatThreshold:     4,
			TreatCyclesAsError: true,
			StrictBases:        false,
			Workers:            0,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
	}
}

// ConfigurationError is the only fatal, pass-aborting error class.
// Everything else surfaces as a finding.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration before any analysis begins.
func (c *Config) Validate() error {
	if c.Analysis.BloatThreshold < 1 {
		return &ConfigurationError{
			Field:  "analysis.bloat_threshold",
			Reason: fmt.Sprintf("must be >= 1, got %d", c.Analysis.BloatThreshold),
		}
	}
	if c.Analysis.Workers < 0 {
		return &ConfigurationError{
			Field:  "analysis.workers",
			Reason: fmt.Sprintf("must be >= 0, got %d", c.Analysis.Workers),
		}
	}
	if c.Cache.TTL < 0 {
		return &ConfigurationError{
			Field:  "cache.ttl",
			Reason: "must not be negative",
		}
	}
	return nil
}

// EffectiveWorkers resolves the worker count (0 means NumCPU).
func (c *Config) EffectiveWorkers() int {
	if c.Analysis.Workers > 0 {
		return c.Analysis.Workers
	}
	return runtime.NumCPU()
}
