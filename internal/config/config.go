// Package config resolves go-dock settings from flags, DOCK_* environment
// variables and an optional .go-dock.yaml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentflare-ai/go-dock/internal/namespace"
	"github.com/agentflare-ai/go-dock/internal/render"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. DOCK_STYLE.
	EnvPrefix = "DOCK"
	// FileName is the config file looked up in the working directory
	// (without extension).
	FileName = ".go-dock"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	Style      string `mapstructure:"style"`
	Output     string `mapstructure:"output"`
	Show       bool   `mapstructure:"show"`
	Theme      string `mapstructure:"theme"`
	Unexported bool   `mapstructure:"unexported"`
	Verbose    bool   `mapstructure:"verbose"`
	Dedupe     string `mapstructure:"dedupe"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Style:  string(render.StyleJournal),
		Theme:  "auto",
		Dedupe: "name",
	}
}

// LoadOptions point Load at its inputs.
type LoadOptions struct {
	// Flags are bound by name; only flags the user changed override lower
	// layers.
	Flags *pflag.FlagSet
	// File is an explicit config path. When empty, FileName is looked up in
	// Dirs.
	File string
	Dirs []string
}

// Load layers defaults, the config file, the environment and flags.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("style", defaults.Style)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("show", defaults.Show)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("unexported", defaults.Unexported)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("dedupe", defaults.Dedupe)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for _, key := range []string{"style", "output", "show", "theme", "unexported", "verbose", "dedupe"} {
			flag := opts.Flags.Lookup(key)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		dirs := opts.Dirs
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the renderer and builder cannot use.
func (c *Config) Validate() error {
	if _, err := render.ParseStyle(c.Style); err != nil {
		return err
	}
	if _, err := namespace.ParseKey(c.Dedupe); err != nil {
		return err
	}
	return nil
}

// DocumentStyle returns the validated Markdeep style.
func (c *Config) DocumentStyle() render.Style {
	style, err := render.ParseStyle(c.Style)
	if err != nil {
		return render.StyleJournal
	}
	return style
}

// DedupeKey returns the configured duplicate identity.
func (c *Config) DedupeKey() namespace.KeyFunc {
	key, err := namespace.ParseKey(c.Dedupe)
	if err != nil {
		return namespace.ByShortName
	}
	return key
}
