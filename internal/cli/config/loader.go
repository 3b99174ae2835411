package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store logger in context.
type loggerKey struct{}

// flagKeys maps CLI flag names to config keys where they differ.
var flagKeys = map[string]string{
	"input":     "input_dir",
	"db":        "database",
	"log-level": "log_level",
}

// dotenvFiles are loaded before environment variables are read.
// godotenv never overrides a variable that is already set, so the
// local file is loaded first to take precedence.
var dotenvFiles = []string{".env.local", ".env"}

// findConfigFile finds the config file to use.
// Priority: explicit path > docfinder.yaml > docfinder.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadEnvFiles loads environment variables from .env files when present.
func loadEnvFiles() {
	for _, name := range dotenvFiles {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// envKey transforms DOCFINDER_SYMPTOM_API_KEY into symptom.api_key and
// DOCFINDER_INPUT_DIR into input_dir.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "symptom_"); ok {
		return "symptom." + rest
	}
	return key
}

// LoadConfig loads configuration from defaults, config file, environment
// variables and flags, in increasing order of precedence. The returned
// path is the config file that was read, if any.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"input_dir":           DefaultInputDir,
		"pattern":             DefaultPattern,
		"database":            DefaultDatabase,
		"store":               DefaultStore,
		"verbose":             false,
		"log_level":           DefaultLogLevel,
		"output":              DefaultOutput,
		"symptom.model":       DefaultModel,
		"symptom.region":      DefaultRegion,
		"symptom.temperature": DefaultTemperature,
		"symptom.max_tokens":  DefaultMaxTokens,
	}, "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFile := findConfigFile(cfgFile)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables (DOCFINDER_ prefix), after .env files
	loadEnvFiles()
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Symptom == nil {
		cfg.Symptom = &SymptomConfig{}
	}
	if cfg.Symptom.APIKey == "" {
		cfg.Symptom.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, configFile, nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// NewLogger builds the CLI logger. Verbose forces debug level.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
		if cfg.Verbose {
			level = slog.LevelDebug
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the config from ctx, falling back to defaults.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}

// GetLogger retrieves the logger from ctx.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputDir:     DefaultInputDir,
		Pattern:      DefaultPattern,
		DatabasePath: DefaultDatabase,
		Store:        DefaultStore,
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
		Symptom: &SymptomConfig{
			Model:       DefaultModel,
			Region:      DefaultRegion,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
	}
}
