// Package config reads polydoc.toml, POLYDOC_* environment variables
// and defaults into a Config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/classify"
	"github.com/dhamidi/polydoc/java/codebase"
	"github.com/dhamidi/polydoc/java/inherit"
)

type ResolveConfig struct {
	ImplicitPackage string `mapstructure:"implicit_package"`
}

type TagsConfig struct {
	Exclude     string   `mapstructure:"exclude"`
	Constructor string   `mapstructure:"constructor"`
	Summary     []string `mapstructure:"summary"`
}

type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	File      string `mapstructure:"file"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type Config struct {
	Sources []string      `mapstructure:"sources"`
	Workers int           `mapstructure:"workers"`
	Resolve ResolveConfig `mapstructure:"resolve"`
	Tags    TagsConfig    `mapstructure:"tags"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
}

// NewViper returns a viper instance with defaults, environment binding
// and the config file loaded. An empty file searches for polydoc.toml
// in the working directory and the user config directory; a missing
// file is not an error then.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("polydoc")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "polydoc"))
		} else if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "polydoc"))
		}
	}

	v.SetDefault("sources", []string{})
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("resolve.implicit_package", java.DefaultImplicitPackage)
	v.SetDefault("tags.exclude", classify.DefaultExcludeTag)
	v.SetDefault("tags.constructor", classify.DefaultConstructorTag)
	v.SetDefault("tags.summary", inherit.DefaultSummaryTags)
	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.file", "")
	v.SetDefault("store.path", "polydoc.db")

	v.SetEnvPrefix("POLYDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// stringToSliceHookFunc splits comma-separated strings, which is how
// list settings arrive from the environment.
func stringToSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf([]string{}) {
			return data, nil
		}
		var out []string
		for _, part := range strings.Split(data.(string), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
}

// Decode unmarshals the settings of v.
func Decode(v *viper.Viper) (*Config, error) {
	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToSliceHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

func Load(file string) (*Config, error) {
	v, err := NewViper(file)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// WorkspaceOptions carries the settings into a codebase.Workspace.
func (c *Config) WorkspaceOptions() []codebase.Option {
	opts := []codebase.Option{
		codebase.WithWorkers(c.Workers),
		codebase.WithImplicitPackage(c.Resolve.ImplicitPackage),
		codebase.WithExcludeTag(c.Tags.Exclude),
		codebase.WithConstructorTag(c.Tags.Constructor),
	}
	if len(c.Tags.Summary) > 0 {
		opts = append(opts, codebase.WithSummaryTags(c.Tags.Summary...))
	}
	return opts
}
