package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default settings values.
const (
	DefaultTemplatePath     = "samples/standalone.yml"
	DefaultConfigPath       = "containers/app.yml"
	DefaultApp              = "app"
	DefaultLauncher         = "./launcher"
	DefaultBootstrapCommand = "rebuild"
	DefaultDiskPath         = "/var"
	DefaultLogLevel         = "info"

	// EnvPrefix prefixes environment overrides, e.g. DISCOURSE_SETUP_APP.
	EnvPrefix = "DISCOURSE_SETUP"

	// SettingsFileName is looked up in the working directory without extension.
	SettingsFileName = "discourse-setup"
)

// DefaultPorts are the ports that must be free before setup.
var DefaultPorts = []int{HTTPPort, HTTPSPort}

// Settings controls a wizard run.
type Settings struct {
	TemplatePath     string        `mapstructure:"template"`
	ConfigPath       string        `mapstructure:"config"`
	App              string        `mapstructure:"app"`
	Launcher         string        `mapstructure:"launcher"`
	BootstrapCommand string        `mapstructure:"bootstrap_command"`
	DiskPath         string        `mapstructure:"disk_path"`
	Ports            []int         `mapstructure:"ports"`
	SkipBootstrap    bool          `mapstructure:"skip_bootstrap"`
	SkipPrereqs      bool          `mapstructure:"skip_prereqs"`
	WaitReady        time.Duration `mapstructure:"wait_ready"`
	MetricsFile      string        `mapstructure:"metrics_file"`
	LogLevel         string        `mapstructure:"log_level"`
}

// flagKeys maps command-line flag names to settings keys.
var flagKeys = map[string]string{
	"template":          "template",
	"config":            "config",
	"app":               "app",
	"launcher":          "launcher",
	"bootstrap-command": "bootstrap_command",
	"disk-path":         "disk_path",
	"ports":             "ports",
	"skip-bootstrap":    "skip_bootstrap",
	"skip-prereqs":      "skip_prereqs",
	"wait-ready":        "wait_ready",
	"metrics-file":      "metrics_file",
	"log-level":         "log_level",
}

// LoadSettings resolves settings from flags, DISCOURSE_SETUP_* environment
// variables, an optional ./discourse-setup.yaml and defaults, in that order.
// flags may be nil.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetConfigName(SettingsFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("template", DefaultTemplatePath)
	v.SetDefault("config", DefaultConfigPath)
	v.SetDefault("app", DefaultApp)
	v.SetDefault("launcher", DefaultLauncher)
	v.SetDefault("bootstrap_command", DefaultBootstrapCommand)
	v.SetDefault("disk_path", DefaultDiskPath)
	v.SetDefault("ports", DefaultPorts)
	v.SetDefault("skip_bootstrap", false)
	v.SetDefault("skip_prereqs", false)
	v.SetDefault("wait_ready", time.Duration(0))
	v.SetDefault("metrics_file", "")
	v.SetDefault("log_level", DefaultLogLevel)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks settings for values the pipeline cannot work with.
func (s *Settings) Validate() error {
	if s.ConfigPath == "" {
		return fmt.Errorf("config path is required")
	}
	if s.TemplatePath == "" {
		return fmt.Errorf("template path is required")
	}
	if s.App == "" {
		return fmt.Errorf("app name is required")
	}
	if len(s.Ports) == 0 {
		return fmt.Errorf("at least one port is required")
	}
	for _, p := range s.Ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("invalid port %d: must be between 1 and 65535", p)
		}
	}
	if s.WaitReady < 0 {
		return fmt.Errorf("wait_ready must not be negative")
	}
	return nil
}
