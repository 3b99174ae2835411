// Package config provides configuration management for the docfinder CLI.
//
// Configuration is layered, highest priority first: explicitly set flags,
// DOCFINDER_ environment variables (with .env files loaded first), the
// docfinder.yaml config file, and built-in defaults.
package config

import "github.com/docfinder/docfinder/internal/symptom"

// Config holds all CLI configuration options.
type Config struct {
	InputDir     string         `koanf:"input_dir"`
	Pattern      string         `koanf:"pattern"`
	DatabasePath string         `koanf:"database"`
	Store        string         `koanf:"store"`
	Verbose      bool           `koanf:"verbose"`
	LogLevel     string         `koanf:"log_level"`
	OutputFormat string         `koanf:"output"`
	Symptom      *SymptomConfig `koanf:"symptom"`
}

// SymptomConfig holds settings for the symptom analyzer's model fallback.
type SymptomConfig struct {
	Model       string  `koanf:"model"`
	APIKey      string  `koanf:"api_key"`
	Region      string  `koanf:"region"`
	Temperature float64 `koanf:"temperature"`
	MaxTokens   int     `koanf:"max_tokens"`
}

// Default configuration values.
const (
	DefaultInputDir    = "data"
	DefaultPattern     = "*.csv"
	DefaultDatabase    = "backend/doctors.db"
	DefaultStore       = "sqlite"
	DefaultLogLevel    = "info"
	DefaultOutput      = "text"
	DefaultModel       = symptom.DefaultModel
	DefaultRegion      = symptom.DefaultRegion
	DefaultTemperature = symptom.DefaultTemperature
	DefaultMaxTokens   = symptom.DefaultMaxTokens
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "docfinder.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "docfinder.yml"

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "DOCFINDER_"
