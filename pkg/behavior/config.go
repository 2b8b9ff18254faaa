package behavior

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/linkki-framework/linkki-sub003/pkg/errutil"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of behaviors:
//
//	read-only: false
//	read-only-properties: [email, ContactPmo.lastName]
//	hidden-properties: [internalNote]
type Config struct {
	ReadOnly           bool     `yaml:"read-only"`
	ReadOnlyProperties []string `yaml:"read-only-properties"`
	HiddenProperties   []string `yaml:"hidden-properties"`
}

// ParseConfig parses and validates a Config. Unknown keys are errors. An
// empty document is a valid empty Config.
func ParseConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse behavior config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses the named file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks all property patterns of the Config.
func (cfg *Config) Validate() error {
	var errs []error
	check := func(key string, patterns []string) {
		for _, p := range patterns {
			if !validPattern(p) {
				errs = append(errs, fmt.Errorf("%s: invalid property pattern %q", key, p))
			}
		}
	}
	check("read-only-properties", cfg.ReadOnlyProperties)
	check("hidden-properties", cfg.HiddenProperties)
	return errutil.Multi(errs...)
}

// Provider returns the behaviors described by the Config.
func (cfg *Config) Provider() List {
	var l List
	if cfg.ReadOnly {
		l = append(l, ReadOnly)
	}
	if len(cfg.ReadOnlyProperties) > 0 {
		l = append(l, ReadOnlyProperties(NewProperties(cfg.ReadOnlyProperties...)))
	}
	if len(cfg.HiddenProperties) > 0 {
		l = append(l, HiddenProperties(NewProperties(cfg.HiddenProperties...)))
	}
	return l
}
