package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/observatory-platform/repodeps/internal/config/validate"
)

// DefaultFileName is looked up in the working directory when --config is not given.
const DefaultFileName = "repodeps.yml"

// configSchema constrains the optional tool configuration file.
const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"pkg_manager": {"type": "string", "enum": ["yum", "dnf", "tdnf"]},
		"root": {"type": "string", "minLength": 1},
		"work_dir": {"type": "string", "minLength": 1},
		"logging": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"level": {"type": "string", "enum": ["debug", "info", "warn", "error"]}
			}
		}
	}
}`

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GlobalConfig holds tool-wide settings loaded from repodeps.yml
type GlobalConfig struct {
	// PkgManager overrides the repository query tool; empty means
	// detect from the host OS.
	PkgManager string `yaml:"pkg_manager"`
	// Root is the default file root for collected metadata (pkg.list etc.)
	Root string `yaml:"root"`
	// WorkDir is where output files are written
	WorkDir string `yaml:"work_dir"`
	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// GlConfig is the active configuration. It holds defaults until Load runs.
var GlConfig = Default()

// Default returns the built-in configuration
func Default() GlobalConfig {
	return GlobalConfig{
		Root:    "pkg",
		WorkDir: ".",
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and validates the configuration file at path. When path is empty
// the default file name is tried and a missing file is not an error.
func Load(path string) (GlobalConfig, error) {
	cfg := Default()

	optional := false
	if path == "" {
		path = DefaultFileName
		optional = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		GlConfig = cfg
		return cfg, nil
	}

	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return cfg, fmt.Errorf("converting config %s to JSON: %w", path, err)
	}
	if err := validate.ValidateAgainstSchema("repodeps-config.json", []byte(configSchema), jsonData, ""); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Root == "" {
		cfg.Root = "pkg"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	GlConfig = cfg
	return cfg, nil
}

// AbsWorkDir returns the absolute path of the configured working directory
func (c GlobalConfig) AbsWorkDir() (string, error) {
	return filepath.Abs(c.WorkDir)
}
