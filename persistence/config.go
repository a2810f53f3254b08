package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// DeviceRecord is what is remembered about one device.
type DeviceRecord struct {
	Name   string `toml:"name"`
	Label  string `toml:"label"`
	Hidden bool   `toml:"hidden"`
}

// Config is the user's saved configuration.
type Config struct {
	UseDarkTheme bool           `toml:"use_dark_theme"`
	Sources      []DeviceRecord `toml:"sources"`
	Sinks        []DeviceRecord `toml:"sinks"`
}

// DefaultConfig returns the configuration used when nothing has been saved.
func DefaultConfig() Config {
	return Config{
		UseDarkTheme: true,
		Sources:      []DeviceRecord{},
		Sinks:        []DeviceRecord{},
	}
}

// ConfigStore handles persistent storage of the device configuration
type ConfigStore struct {
	filepath string
}

// NewConfigStore creates a ConfigStore at the user's XDG config location.
// If path is not empty it is used instead.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path != "" {
		return &ConfigStore{filepath: path}, nil
	}
	path, err := xdg.ConfigFile("audioselect/config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get config file path: %w", err)
	}
	return &ConfigStore{filepath: path}, nil
}

// Path returns the file the store reads and writes.
func (cs *ConfigStore) Path() string {
	return cs.filepath
}

// Load reads the stored configuration. A missing file is not an error; the
// defaults are returned. Keys absent from the file keep their default values.
func (cs *ConfigStore) Load() (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(cs.filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file %s: %w", cs.filepath, err)
	}
	if cfg.Sources == nil {
		cfg.Sources = []DeviceRecord{}
	}
	if cfg.Sinks == nil {
		cfg.Sinks = []DeviceRecord{}
	}
	return cfg, nil
}

// Store writes cfg to disk, replacing the previous file.
func (cs *ConfigStore) Store(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(cs.filepath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// A failed write never leaves a truncated config behind.
	tmp, err := os.CreateTemp(filepath.Dir(cs.filepath), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), cs.filepath); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
