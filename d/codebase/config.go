package codebase

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFileName = "dlt.yaml"

// Config tunes workspace scanning. It is loaded from dlt.yaml at the
// workspace root when present; every field has a working default.
type Config struct {
	// Directory names skipped during a scan, matched against each
	// path segment.
	Exclude []string `yaml:"exclude"`

	// Cap on diagnostics kept per file. Parsing continues past the
	// cap; only the report is truncated.
	MaxDiagnostics int `yaml:"max_diagnostics"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude:        []string{".git", ".dub"},
		MaxDiagnostics: 100,
	}
}

// LoadConfig reads dlt.yaml from rootDir. A missing file yields the
// default config, not an error.
func LoadConfig(rootDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(rootDir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if config.MaxDiagnostics <= 0 {
		config.MaxDiagnostics = DefaultConfig().MaxDiagnostics
	}
	return config, nil
}

// Excluded reports whether any path segment matches an excluded
// directory name.
func (c *Config) Excluded(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		for _, name := range c.Exclude {
			if segment == name {
				return true
			}
		}
	}
	return false
}
