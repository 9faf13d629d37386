package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teranos/pysharp/errors"
)

// Formats accepted by Render
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// maxBackups is how many rotated copies WriteDefault keeps (.back1 newest)
const maxBackups = 3

// Defaults returns the configuration with only built-in defaults applied.
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode; reaching this is a programming error
		panic(err)
	}
	return cfg
}

// Render serializes cfg in the given format.
func Render(cfg *Config, format string) ([]byte, error) {
	switch format {
	case FormatTOML, "":
		data, err := toml.Marshal(cfg)
		return data, errors.Wrap(err, "failed to marshal config as toml")
	case FormatYAML:
		data, err := yaml.Marshal(cfg)
		return data, errors.Wrap(err, "failed to marshal config as yaml")
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as json")
		}
		return append(data, '\n'), nil
	}
	return nil, errors.WithHint(
		errors.Newf("unknown format %q", format),
		"use toml, yaml or json")
}

// WriteDefault writes a pysharp.toml holding the defaults to path.
// An existing file is only replaced with force, after rotating backups.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it (a backup is kept)")
		}
		if err := createBackup(path); err != nil {
			return errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := Render(Defaults(), FormatTOML)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	header := []byte("# pysharp configuration\n\n")
	if err := os.WriteFile(path, append(header, data...), DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup rotates backups (.back1 .. .back3) and copies the current
// file to .back1.
func createBackup(configPath string) error {
	backup := func(n int) string { return fmt.Sprintf("%s.back%d", configPath, n) }

	if err := os.Remove(backup(maxBackups)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", backup(maxBackups))
	}
	for n := maxBackups - 1; n >= 1; n-- {
		if _, err := os.Stat(backup(n)); err == nil {
			if err := os.Rename(backup(n), backup(n+1)); err != nil {
				return errors.Wrapf(err, "failed to rotate %s", backup(n))
			}
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backup(1), content, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", backup(1))
	}
	return nil
}
