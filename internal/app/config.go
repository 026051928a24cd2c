package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the effective tool configuration. Layering order is config
// file, then environment, then command flags; later layers win.
type Config struct {
	DBPath         string  `yaml:"db_path" env:"BMI_DB"`
	LogLevel       string  `yaml:"log_level" env:"BMI_LOG_LEVEL"`
	DefaultHeightM float64 `yaml:"default_height_m" env:"BMI_DEFAULT_HEIGHT_M"`
	WeightUnit     string  `yaml:"weight_unit" env:"BMI_WEIGHT_UNIT"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:   "info",
		WeightUnit: "kg",
	}
}

// LoadConfig reads the YAML config file at path (the default location
// when path is empty; a missing file is not an error) and overlays
// environment variables on top.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config environment: %w", err)
	}
	return cfg, nil
}

// WriteStarterConfig writes a default config file. It refuses to
// overwrite an existing file unless force is set.
func WriteStarterConfig(path string, force bool) error {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %q already exists; use --force to overwrite", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	out, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return fmt.Errorf("marshal starter config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config file %q: %w", path, err)
	}
	return nil
}
