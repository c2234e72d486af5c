package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// LocalConfigName is the config file looked up in the repository root
	LocalConfigName = ".quati.yaml"

	// PrefixEnvVar overrides the branch prefix when set, even to an empty string
	PrefixEnvVar = "QUATI_PREFIX"

	// DefaultRemote is the remote branches are pushed to
	DefaultRemote = "origin"
)

// Config holds the settings for a single invocation. It is read once and not
// modified afterwards; use WithFlags to derive a new value.
type Config struct {
	Prefix       BranchPrefix
	Remote       string
	SkipHooks    bool
	RemovePrefix bool
	NoPush       bool

	PrefixSource Source
	RemoteSource Source
}

// Flags are the command-line switches that feed into Config
type Flags struct {
	SkipHooks    bool
	RemovePrefix bool
	NoPush       bool
}

// fileConfig is the on-disk shape of .quati.yaml
type fileConfig struct {
	Prefix *string `yaml:"prefix"`
	Remote *string `yaml:"remote"`
}

// LookupEnvFunc looks up an environment variable, reporting whether it is set
type LookupEnvFunc func(key string) (string, bool)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Prefix:       DefaultBranchPrefix,
		Remote:       DefaultRemote,
		PrefixSource: SourceDefault,
		RemoteSource: SourceDefault,
	}
}

// Load reads configuration for the repository at repoRoot using the process environment.
// An empty repoRoot skips the config file.
func Load(repoRoot string) (Config, error) {
	return LoadWithEnv(repoRoot, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment lookup
func LoadWithEnv(repoRoot string, lookupEnv LookupEnvFunc) (Config, error) {
	cfg := Default()

	if repoRoot != "" {
		file, err := readFileConfig(filepath.Join(repoRoot, LocalConfigName))
		if err != nil {
			return Config{}, err
		}
		if file.Prefix != nil {
			cfg.Prefix = BranchPrefix(*file.Prefix)
			cfg.PrefixSource = SourceLocal
		}
		if file.Remote != nil && *file.Remote != "" {
			cfg.Remote = *file.Remote
			cfg.RemoteSource = SourceLocal
		}
	}

	if lookupEnv != nil {
		if prefix, ok := lookupEnv(PrefixEnvVar); ok {
			cfg.Prefix = BranchPrefix(prefix)
			cfg.PrefixSource = SourceEnv
		}
	}

	return cfg, nil
}

func readFileConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fileConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file, nil
}

// WithFlags returns a copy of c with the command-line flags applied
func (c Config) WithFlags(flags Flags) Config {
	c.SkipHooks = flags.SkipHooks
	c.RemovePrefix = flags.RemovePrefix
	c.NoPush = flags.NoPush
	if flags.RemovePrefix {
		c.PrefixSource = SourceFlag
	}
	return c
}

// BranchName returns the branch name for base, prefixed unless RemovePrefix is set
func (c Config) BranchName(base string) string {
	if c.RemovePrefix {
		return base
	}
	return c.Prefix.Apply(base)
}
