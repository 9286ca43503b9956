// Package config provides configuration management for vsave using Viper.
package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/vsave/internal/paths"
	"github.com/thoreinstein/vsave/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "vsave"

// DefaultRetention is the number of snapshots kept by prune when the config
// does not say otherwise.
const DefaultRetention = 20

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// SaveDir overrides save directory detection when set.
	SaveDir string `mapstructure:"save_dir" yaml:"save_dir,omitempty"`

	// BackupDir overrides the default backup root when set.
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir,omitempty"`

	// Retention is the snapshot count kept by prune.
	Retention int `mapstructure:"retention" yaml:"retention"`

	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// WatchConfig configures automatic captures in watch mode.
type WatchConfig struct {
	// Debounce is the quiet period after the last save-dir write.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`

	// Schedule is an optional cron spec for periodic captures.
	Schedule string `mapstructure:"schedule" yaml:"schedule,omitempty"`
}

// MarshalYAML writes the debounce as a duration string ("2s") rather than
// raw nanoseconds, keeping the config file hand-editable.
func (w WatchConfig) MarshalYAML() (any, error) {
	type watchYAML struct {
		Debounce string `yaml:"debounce"`
		Schedule string `yaml:"schedule,omitempty"`
	}
	return watchYAML{
		Debounce: w.Debounce.String(),
		Schedule: w.Schedule,
	}, nil
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support (VSAVE_SAVE_DIR, etc.)
	viper.SetEnvPrefix("VSAVE")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("retention", DefaultRetention)
	viper.SetDefault("watch.debounce", 2*time.Second)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found
// (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// If user specified a path, this is an error
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Save writes the configuration to the default config file atomically,
// creating the config directory if needed.
func Save(cfg *Config) error {
	if err := paths.EnsureDir(paths.ConfigDir(), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteYAML(paths.ConfigFile(), cfg)
}
