package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// File holds the runtime configuration loaded from YAML.
// Zero values are back-filled by defaults() so a partial file is valid.
type File struct {
	BindAddr     string      `yaml:"bind_addr"`
	Port         string      `yaml:"port"`
	BoundaryHour int         `yaml:"boundary_hour"`
	Timezone     string      `yaml:"timezone"`
	Language     string      `yaml:"language"`
	Store        StoreConfig `yaml:"store"`
}

// StoreConfig selects the persistence backend for the birth record.
type StoreConfig struct {
	Mode string `yaml:"mode"` // keyring, file, or memory
	Path string `yaml:"path"` // file mode only; empty = user cache dir
}

func (c *File) defaults() {
	if c.BindAddr == "" {
		c.BindAddr = LocalhostBindAddr
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.BoundaryHour <= 0 || c.BoundaryHour > 23 {
		c.BoundaryHour = DefaultBoundaryHour
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Store.Mode == "" {
		c.Store.Mode = DefaultStoreMode
	}
}

// Validate checks the fields that cannot be silently defaulted.
func (c *File) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("%s: %q", ErrPortRequired, c.Port)
	}
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%s: %d", ErrPortRange, port)
	}
	switch c.Store.Mode {
	case StoreModeKeyring, StoreModeFile, StoreModeMemory:
	default:
		return fmt.Errorf("%s: %q", ErrStoreUnknown, c.Store.Mode)
	}
	return nil
}

// Default returns a configuration with every field at its default.
func Default() *File {
	cfg := &File{}
	cfg.defaults()
	return cfg
}

// LoadFile reads a YAML configuration file and applies defaults.
// A missing path returns the defaults unchanged.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}
	cfg := &File{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigParse, err)
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
