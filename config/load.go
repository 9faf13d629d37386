package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/pysharp/errors"
	"github.com/teranos/pysharp/logger"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	explicitFile  string
	overrides     = map[string]interface{}{}
	filesUsed     []string
)

// SetConfigFile makes Load read path instead of searching for pysharp.toml.
// The file must exist.
func SetConfigFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitFile = path
	globalConfig = nil
	viperInstance = nil
}

// Set overrides a key with the highest precedence (used for CLI flags).
func Set(key string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()
	overrides[key] = value
	globalConfig = nil
	viperInstance = nil
}

// Load reads the pysharp configuration. The result is cached until Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path, on top of the
// defaults only (no environment, no other files).
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return cfg, nil
}

// FilesUsed lists the config files merged by the last Load, lowest precedence first.
func FilesUsed() []string {
	mu.Lock()
	defer mu.Unlock()
	return append([]string(nil), filesUsed...)
}

// Reset clears the cached configuration, overrides and explicit file
// (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	explicitFile = ""
	overrides = map[string]interface{}{}
	filesUsed = nil
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	SetDefaults(v)

	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	viperInstance = v
	return v, nil
}

// findProjectConfig searches for pysharp.toml by walking up the directory tree.
// Returns the path to the first config file found, or empty string if none found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// UserConfigPath returns ~/.pysharp/config.toml, or "" without a home directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pysharp", "config.toml")
}

// mergeConfigFiles merges configuration files below the environment layer.
// Precedence (lowest to highest): user < project (or explicit file)
func mergeConfigFiles(v *viper.Viper) error {
	filesUsed = nil

	var configPaths []string
	if user := UserConfigPath(); user != "" {
		configPaths = append(configPaths, user)
	}

	if explicitFile != "" {
		if _, err := os.Stat(explicitFile); err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "config file %s", explicitFile),
				"check the path given with --config")
		}
		configPaths = append(configPaths, explicitFile)
	} else if project := findProjectConfig(); project != "" {
		configPaths = append(configPaths, project)
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(configPath)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", configPath)
		}
		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", configPath)
		}

		filesUsed = append(filesUsed, configPath)
		logger.Debugw("Merged config file", logger.FieldFile, configPath)
	}
	return nil
}
