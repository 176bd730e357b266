package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/bizmatters/agent-builder/code-analyzer/internal/analysis"
	"github.com/bizmatters/agent-builder/code-analyzer/internal/logging"
)

// Config holds process configuration resolved from the environment
type Config struct {
	APIKey    string
	ModelName string
	Port      string
	LogLevel  string

	// Defaulted lists the variables that were unset and fell back to defaults
	Defaulted []string
}

// LoadEnvFile reads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// FromEnv resolves configuration from the process environment
func FromEnv() Config {
	return Resolve(os.Getenv)
}

// Resolve builds a Config using lookup for each variable
func Resolve(lookup func(string) string) Config {
	cfg := Config{
		APIKey:    firstSet(lookup, "GOOGLE_API_KEY", "API_KEY"),
		ModelName: firstSet(lookup, "GEMINI_MODEL", "MODEL_NAME"),
		Port:      lookup("PORT"),
		LogLevel:  lookup("LOG_LEVEL"),
	}

	if cfg.ModelName == "" {
		cfg.ModelName = analysis.DefaultModel
		cfg.Defaulted = append(cfg.Defaulted, "GEMINI_MODEL")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		cfg.Defaulted = append(cfg.Defaulted, "PORT")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		cfg.Defaulted = append(cfg.Defaulted, "LOG_LEVEL")
	}

	return cfg
}

// LogDefaults warns about defaulted variables and a missing credential.
// Call it after logging.Init so the warnings are written.
func (c Config) LogDefaults() {
	for _, key := range c.Defaulted {
		switch key {
		case "GEMINI_MODEL":
			logging.Warnw("GEMINI_MODEL not set, using default", "model", c.ModelName)
		case "PORT":
			logging.Warnw("PORT not set, using default", "port", c.Port)
		}
	}
	if c.APIKey == "" {
		logging.Warnw("GOOGLE_API_KEY not set, analysis requests will fail")
	}
}

// Analysis returns the subset of configuration consumed by the analyzer
func (c Config) Analysis() analysis.Config {
	return analysis.Config{
		APIKey:    c.APIKey,
		ModelName: c.ModelName,
	}
}

func firstSet(lookup func(string) string, keys ...string) string {
	for _, key := range keys {
		if v := lookup(key); v != "" {
			return v
		}
	}
	return ""
}
