package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-piecerng/internal/logging"
)

// defaultConfigPath is read when --config is not given and the file exists.
const defaultConfigPath = "piecerng.yaml"

// defaultLength is the sequence length used when none is configured.
const defaultLength = 500

// Config is the command's file configuration. Flags override it.
type Config struct {
	Length      int       `yaml:"length"`
	Workers     int       `yaml:"workers"`
	TablePath   string    `yaml:"table_path"`
	StorePath   string    `yaml:"store_path"`
	MetricsAddr string    `yaml:"metrics_addr"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func defaultConfig() Config {
	return Config{
		Length: defaultLength,
		Log:    LogConfig{Level: "info"},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Length < 0 {
		return fmt.Errorf("length must not be negative: %d", c.Length)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func (c *Config) loggingConfig() logging.Config {
	level, _ := logging.ParseLevel(c.Log.Level)
	return logging.Config{Level: level, JSON: c.Log.JSON, Service: "piecerng"}
}
