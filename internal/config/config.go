// Package config loads the optional YAML configuration document that tunes
// exclusions, field filtering and derived report fields.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the optional settings of a run. The zero value means no
// exclusions, no field filtering and no derived fields.
type Config struct {
	Exclusions          []string `yaml:"exclusions"`
	KeepExcludedUsers   bool     `yaml:"keepExcludedUsers"`
	ExtractEmailDomain  bool     `yaml:"extractEmailDomain"`
	FieldsWhitelist     []string `yaml:"fieldsWhitelist"`
	ExcludeRepositories []string `yaml:"excludeRepositories"`
}

// document is the on-disk shape: the settings live under a top-level
// "config" section.
type document struct {
	Config Config `yaml:"config"`
}

// Load reads the configuration document at path. An empty path means no
// configuration and yields the defaults; a non-empty path that cannot be
// read or parsed is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return doc.Config, nil
}

// IsExcluded reports whether login matches an exclusion rule.
func (c Config) IsExcluded(login string) bool {
	for _, excluded := range c.Exclusions {
		if excluded == login {
			return true
		}
	}
	return false
}

// IsRepositoryExcluded reports whether a repository full name is configured
// to be skipped during listing.
func (c Config) IsRepositoryExcluded(fullName string) bool {
	for _, excluded := range c.ExcludeRepositories {
		if excluded == fullName {
			return true
		}
	}
	return false
}

// AllowsField reports whether a profile field survives whitelist filtering.
// An empty whitelist allows every field.
func (c Config) AllowsField(name string) bool {
	if len(c.FieldsWhitelist) == 0 {
		return true
	}
	for _, allowed := range c.FieldsWhitelist {
		if allowed == name {
			return true
		}
	}
	return false
}
