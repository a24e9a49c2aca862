// Package config loads bananagen settings from defaults, an optional YAML
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/mhpenta/bananagen"
	"github.com/mhpenta/bananagen/provider/gemini"
	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey names the variable holding the Gemini API key.
	EnvAPIKey = "GEMINI_API_KEY"

	// DefaultFile is read when no config path is given and it exists.
	DefaultFile = "bananagen.yaml"

	// DefaultEnvFile is loaded into the environment when present.
	DefaultEnvFile = ".env"
)

// Config holds the resolved settings of one CLI run.
type Config struct {
	APIKey string `yaml:"-"`

	ImageModel        string `yaml:"image_model"`
	TextModel         string `yaml:"text_model"`
	OutputDir         string `yaml:"output_dir"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ImageModel: gemini.DefaultImageModel,
		TextModel:  gemini.DefaultTextModel,
		OutputDir:  bananagen.DefaultOutputDir,
	}
}

// Load resolves the configuration. An empty path reads DefaultFile if it
// exists; an explicit path must exist. envFile defaults to DefaultEnvFile and
// may be missing. Variables already set in the environment are not overridden.
func Load(path, envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)
	return cfg, nil
}

// GeminiConfig maps the settings onto the provider configuration.
func (c Config) GeminiConfig() gemini.Config {
	return gemini.Config{
		APIKey:            c.APIKey,
		ImageModel:        c.ImageModel,
		TextModel:         c.TextModel,
		RequestsPerMinute: c.RequestsPerMinute,
	}
}
