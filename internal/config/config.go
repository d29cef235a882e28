package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultPath = "subxray.yaml"

type Config struct {
	OutputDir string         `yaml:"output_dir"`
	Fetch     FetchConfig    `yaml:"fetch"`
	Database  DatabaseConfig `yaml:"database"`
	GeoIP     GeoIPConfig    `yaml:"geoip"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	// Optional upstream proxy for the subscription request, e.g.
	// socks5://127.0.0.1:1080.
	Proxy string `yaml:"proxy"`
}

type DatabaseConfig struct {
	// Path to the sqlite history database. Empty disables history.
	Path string `yaml:"path"`
}

type GeoIPConfig struct {
	// Path to a GeoLite2-Country mmdb used to annotate history records.
	CountryPath string `yaml:"country_path"`
}

// Load reads the YAML config at path. With an empty path the default file is
// used if it exists; a missing default file just yields the defaults, while a
// missing explicit file is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		OutputDir: ".",
		Fetch: FetchConfig{
			Timeout:   20 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		},
	}

	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Fetch.Timeout <= 0 {
		cfg.Fetch.Timeout = 20 * time.Second
	}

	return cfg, nil
}
