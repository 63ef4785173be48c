package config

import (
	"strings"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/paths"
)

// Config is the effective rulesync configuration
type Config struct {
	Paths  PathsConfig  `koanf:"paths" toml:"paths"`
	Rules  RulesConfig  `koanf:"rules" toml:"rules"`
	Hints  HintsConfig  `koanf:"hints" toml:"hints"`
	Output OutputConfig `koanf:"output" toml:"output"`
}

// PathsConfig locates the two directories
type PathsConfig struct {
	Target string `koanf:"target" toml:"target"`
	Source string `koanf:"source" toml:"source"`
}

// RulesConfig selects rule files
type RulesConfig struct {
	Suffix string `koanf:"suffix" toml:"suffix"`
}

// HintsConfig holds user-facing remediation hints
type HintsConfig struct {
	MissingSource string `koanf:"missing_source" toml:"missing_source"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	// Format is auto, term, text or json
	Format string `koanf:"format" toml:"format"`
	// Styles is an optional YAML file replacing the built-in styles
	Styles string `koanf:"styles" toml:"styles"`
}

// Validate checks that every required value is present
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Paths.Target) == "" {
		missing = append(missing, "paths.target")
	}
	if strings.TrimSpace(c.Paths.Source) == "" {
		missing = append(missing, "paths.source")
	}
	if c.Rules.Suffix == "" {
		missing = append(missing, "rules.suffix")
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrConfigValid, "missing configuration values: %s", strings.Join(missing, ", ")).
			WithDetail("keys", missing)
	}
	return nil
}

// ResolveDirs returns the absolute target and source directories,
// resolving relative paths against base (the working directory if empty).
func (c *Config) ResolveDirs(base string) (target, source string, err error) {
	target, err = paths.Resolve(base, c.Paths.Target)
	if err != nil {
		return "", "", errors.Wrap(err, errors.ErrConfigValid, "cannot resolve target directory")
	}
	source, err = paths.Resolve(base, c.Paths.Source)
	if err != nil {
		return "", "", errors.Wrap(err, errors.ErrConfigValid, "cannot resolve source directory")
	}
	return target, source, nil
}
