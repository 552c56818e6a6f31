// Package config provides centralized configuration for Plantcare.
//
// Values come from three layers, later layers winning: built-in defaults,
// an optional YAML file at $XDG_CONFIG_HOME/plantcare/config.yaml, and
// PLANTCARE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is the application name used for XDG directories.
const AppName = "plantcare"

// InMemory is the path value that selects an in-memory database.
const InMemory = ":memory:"

// Config holds all runtime configuration values.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path is the badger directory for reports and preferences.
	// ":memory:" keeps everything in memory.
	Path string `mapstructure:"path"`

	// SessionPath is the badger directory for session-scoped values.
	// Default: $XDG_RUNTIME_DIR/plantcare/session
	SessionPath string `mapstructure:"session_path"`

	// MinFreeSpace is the minimum free space required before a write.
	// Default: 10MB
	MinFreeSpace uint64 `mapstructure:"min_free_space"`
}

// UIConfig holds presentation configuration.
type UIConfig struct {
	// BannerTimeout is how long a success banner stays visible.
	// Default: 3s
	BannerTimeout time.Duration `mapstructure:"banner_timeout"`
}

// LogConfig holds log file configuration for the terminal UI, where
// stderr is not available.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:         filepath.Join(xdg.DataHome, AppName, "db"),
			SessionPath:  filepath.Join(xdg.RuntimeDir, AppName, "session"),
			MinFreeSpace: 10 * 1024 * 1024,
		},
		UI: UIConfig{
			BannerTimeout: 3 * time.Second,
		},
		Log: LogConfig{
			File:       filepath.Join(xdg.StateHome, AppName, AppName+".log"),
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// DefaultConfigFile returns the default config file location.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadOptions configures Load.
type LoadOptions struct {
	// ConfigFile overrides the config file location. A missing file is
	// not an error.
	ConfigFile string
}

// Load builds the configuration from defaults, the config file and the
// environment.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("PLANTCARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Short aliases kept for scripts and tests.
	if err := v.BindEnv("storage.path", "PLANTCARE_DATABASE", "PLANTCARE_STORAGE_PATH"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("storage.session_path", "PLANTCARE_SESSION_DATABASE", "PLANTCARE_STORAGE_SESSION_PATH"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("ui.banner_timeout", "PLANTCARE_BANNER_TIMEOUT", "PLANTCARE_UI_BANNER_TIMEOUT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("log.file", "PLANTCARE_LOG_FILE"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("storage.min_free_space", "PLANTCARE_MIN_FREE_SPACE", "PLANTCARE_STORAGE_MIN_FREE_SPACE"); err != nil {
		return nil, err
	}

	file := opts.ConfigFile
	if file == "" {
		file = DefaultConfigFile()
	}
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return errors.New("storage.path must not be empty")
	}
	if c.UI.BannerTimeout <= 0 {
		return fmt.Errorf("ui.banner_timeout must be positive, got %s", c.UI.BannerTimeout)
	}
	return nil
}

// IsInMemory reports whether a storage path selects in-memory mode.
func IsInMemory(path string) bool {
	return path == InMemory
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.session_path", d.Storage.SessionPath)
	v.SetDefault("storage.min_free_space", d.Storage.MinFreeSpace)
	v.SetDefault("ui.banner_timeout", d.UI.BannerTimeout)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
}

// isNotFound reports whether a ReadInConfig error means the file is absent.
// SetConfigFile surfaces a plain fs error rather than ConfigFileNotFoundError.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}
