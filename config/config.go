// Package config loads converter settings from a YAML file.
//
// The file is named by the --config flag of fcbconv or, failing that, the
// FCB_CONFIG environment variable. Without either, Default applies. Values
// given on the command line override the file.
//
//	dictionaries:
//	  - ${HOME}/fcb/strings.txt
//	  - extra.txt.zst
//	missing_hashes: missing.txt
//	export:
//	  pairing: true
//	  indent: "  "
//	decode:
//	  strict_counts: false
//	import:
//	  check_external_names: true
//	log:
//	  level: info
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "FCB_CONFIG"

// Config is the complete converter configuration.
type Config struct {
	// Dictionaries lists name list files, loaded in order. Relative paths
	// are resolved against the directory of the config file.
	Dictionaries []string `yaml:"dictionaries"`

	// MissingHashes is where unresolved hashes are written after an export.
	// Empty disables the report.
	MissingHashes string `yaml:"missing_hashes"`

	Export ExportConfig `yaml:"export"`
	Decode DecodeConfig `yaml:"decode"`
	Import ImportConfig `yaml:"import"`
	Log    LogConfig    `yaml:"log"`
}

// ExportConfig configures binary to XML conversion.
type ExportConfig struct {
	// Pairing folds a plaintext field into the hashed field after it.
	// Default: true
	Pairing bool `yaml:"pairing"`

	// Indent is the per-level indentation. Default: two spaces
	Indent string `yaml:"indent"`
}

// DecodeConfig configures container decoding.
type DecodeConfig struct {
	// StrictCounts rejects files whose header counts disagree with the tree.
	StrictCounts bool `yaml:"strict_counts"`
}

// ImportConfig configures XML to binary conversion.
type ImportConfig struct {
	// CheckExternalNames verifies that external fragments are stored under
	// the name their root object declares. Default: true
	CheckExternalNames bool `yaml:"check_external_names"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Pairing: true,
			Indent:  "  ",
		},
		Import: ImportConfig{
			CheckExternalNames: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by FCB_CONFIG, or returns Default when it is
// not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return Default(), nil
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Keys absent from
// the file keep their defaults; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	return dec.Decode(c)
}

// resolvePaths expands ${VAR} references and anchors relative paths at dir.
func (c *Config) resolvePaths(dir string) {
	for i, p := range c.Dictionaries {
		c.Dictionaries[i] = resolvePath(expandVars(p), dir)
	}

	if c.MissingHashes != "" {
		c.MissingHashes = resolvePath(expandVars(c.MissingHashes), dir)
	}
}

func resolvePath(p, dir string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(dir, p)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}

		return parts[2]
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	for i, p := range c.Dictionaries {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("dictionaries[%d] is empty", i))
		}
	}

	if strings.Trim(c.Export.Indent, " \t") != "" {
		errs = append(errs, fmt.Errorf("export.indent must only contain spaces and tabs, got %q", c.Export.Indent))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel returns the slog level named by Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}

	return level, nil
}
