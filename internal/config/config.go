package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"goalsort/internal/eventbus"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	List       ListSettings     `toml:"list"`
	AutoScroll AutoScrollConfig `toml:"autoscroll"`
	Storage    StorageSettings  `toml:"storage"`
	Seed       SeedSettings     `toml:"seed"`
}

// ListSettings controls how the goal list is drawn
type ListSettings struct {
	RowHeight int    `toml:"row_height"` // terminal lines per row
	Handle    string `toml:"handle"`     // drag handle glyph
	ShowBlurb bool   `toml:"show_blurb"`
}

// AutoScrollConfig controls scrolling while a row is dragged near an edge
type AutoScrollConfig struct {
	FastStep   int `toml:"fast_step"`
	NormalStep int `toml:"normal_step"`
	TickMS     int `toml:"tick_ms"`
}

// StorageSettings selects the goal store
type StorageSettings struct {
	Driver string `toml:"driver"` // memory or sqlite
	Path   string `toml:"path"`
}

// SeedSettings fills an empty store with demo goals
type SeedSettings struct {
	DemoGoals int `toml:"demo_goals"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the file at path. An empty
// path selects config.toml in the user config directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = filepath.Join(DefaultDir(), "config.toml")
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultDir returns the goalsort directory under the user config directory
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "goalsort")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to the defaults when
// the file does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Normalize replaces out-of-range values with usable ones
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Version <= 0 {
		c.Version = def.Version
	}
	if c.List.RowHeight < 1 {
		c.List.RowHeight = 1
	}
	if c.List.Handle == "" {
		c.List.Handle = def.List.Handle
	}
	if c.AutoScroll.FastStep < 0 {
		c.AutoScroll.FastStep = 0
	}
	if c.AutoScroll.NormalStep < 0 {
		c.AutoScroll.NormalStep = 0
	}
	if c.AutoScroll.TickMS <= 0 {
		c.AutoScroll.TickMS = def.AutoScroll.TickMS
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Seed.DemoGoals < 0 {
		c.Seed.DemoGoals = 0
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		List: ListSettings{
			RowHeight: 2,
			Handle:    "@",
			ShowBlurb: true,
		},
		AutoScroll: AutoScrollConfig{
			TickMS: 16,
		},
		Storage: StorageSettings{
			Driver: DriverMemory,
			Path:   filepath.Join(DefaultDir(), "goals.sqlite"),
		},
		Seed: SeedSettings{
			DemoGoals: 18,
		},
	}
}
