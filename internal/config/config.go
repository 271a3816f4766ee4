// Package config loads the optional tool configuration from the
// user's home directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".exifscope"
	configFileName = "config.yaml"
)

// Config holds user preferences. Every field has a working default;
// the file is optional.
type Config struct {
	// ReportDir is where saved JSON reports land.
	ReportDir string `yaml:"report_dir"`
	// NoColor disables ANSI styling in the terminal report.
	NoColor bool `yaml:"no_color"`
	// GeocodeURL overrides the reverse-geocoding endpoint.
	GeocodeURL string `yaml:"geocode_url"`
	// UserAgent is sent with geocoding requests; Nominatim requires
	// an identifying agent.
	UserAgent string `yaml:"user_agent"`
}

func Default() Config {
	return Config{ReportDir: "."}
}

// Load reads ~/.exifscope/config.yaml. A missing file is not an
// error; defaults apply.
func Load() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Default(), fmt.Errorf("determine user home: %w", err)
	}
	return LoadFrom(filepath.Join(homeDir, configDirName, configFileName))
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config at %s: %w", path, err)
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "."
	}
	return cfg, nil
}
