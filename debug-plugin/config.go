package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
)

// config is the optional YAML file passed as the plugin's single
// argument.
type config struct {
	// LogLevel accepts the slog level names (DEBUG, INFO, WARN, ERROR).
	LogLevel slog.Level `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		LogLevel: slog.LevelInfo,
	}
}

func loadConfig(path string) (config, error) {
	conf := defaultConfig()

	configFile, err := os.Open(path)
	if err != nil {
		return config{}, fmt.Errorf("open config file: %w", err)
	}

	defer func() {
		_ = configFile.Close()
	}()

	err = yaml.NewDecoder(configFile, yaml.DisallowUnknownField(), yaml.UseJSONUnmarshaler()).Decode(&conf)
	if err != nil && !errors.Is(err, io.EOF) {
		return config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}

	return conf, nil
}
