package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// DefaultPath returns $HOME/.config/tagger/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tagger", "config.toml"), nil
}

// WriteDefault writes the built-in configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(fs afero.Fs, path string, force bool) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if exists && !force {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := gotoml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// strictFile accepts both spellings of between_separators.
type strictFile struct {
	Timestamp TimestampSection `toml:"timestamp"`
	Tags      struct {
		MainSeparators    []string `toml:"main_separators"`
		BetweenSeparators any      `toml:"between_separators"`
	} `toml:"tags"`
	Edit EditSection `toml:"edit"`
}

// UnknownKeys strictly decodes the TOML file at path and returns the keys
// that do not belong to the configuration layout.
func UnknownKeys(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f strictFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var keys []string
	for _, key := range md.Undecoded() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)

	return keys, nil
}
