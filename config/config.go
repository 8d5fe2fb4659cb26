// Package config provides configuration parsing for dashgrid.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the dashgrid configuration.
type Config struct {
	// Layout holds the grid placement settings.
	Layout LayoutConfig `yaml:"layout"`

	// Display holds theme and region settings.
	Display DisplayConfig `yaml:"display"`

	// Demo holds settings for the bundled demo dashboard.
	Demo DemoConfig `yaml:"demo"`
}

// LayoutConfig holds the settings consumed by the layout engine on every
// recalculation.
type LayoutConfig struct {
	// Columns is the requested column count (>= 1).
	Columns int `yaml:"columns"`
	// Padding is the horizontal gap between columns (>= 0).
	Padding int `yaml:"padding"`
	// RowSpacing is the vertical gap between stacked groups (>= 0).
	RowSpacing int `yaml:"row_spacing"`
	// ShowBorders toggles box-drawing frames around groups.
	ShowBorders bool `yaml:"show_borders"`
	// MinGroupWidth is the narrowest acceptable group width before the
	// engine drops columns (>= 1).
	MinGroupWidth int `yaml:"min_group_width"`
}

// DisplayConfig holds rendering settings.
type DisplayConfig struct {
	// Theme is the preset name: "monitoring", "minimal", or "full".
	Theme string `yaml:"theme"`
	// MessageLines is the height of the message window (>= 1).
	MessageLines int `yaml:"message_lines"`
}

// DemoConfig holds settings for the demo host loop.
type DemoConfig struct {
	// TickInterval is a duration string (e.g. "500ms", "2s") between
	// simulated value updates.
	TickInterval string `yaml:"tick_interval"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Columns:       2,
			Padding:       1,
			RowSpacing:    1,
			ShowBorders:   true,
			MinGroupWidth: 30,
		},
		Display: DisplayConfig{
			Theme:        "monitoring",
			MessageLines: 4,
		},
		Demo: DemoConfig{
			TickInterval: "500ms",
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dashgrid", "config.yaml")
}

// LoadConfig loads configuration from a YAML file, starting from the
// defaults. A missing file (or empty path) yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the configuration and clamps nothing: out-of-range
// values are reported so the caller can fall back to defaults explicitly.
func (c *Config) Validate() error {
	if c.Layout.Columns < 1 {
		return fmt.Errorf("layout.columns must be >= 1, got %d", c.Layout.Columns)
	}
	if c.Layout.Padding < 0 {
		return fmt.Errorf("layout.padding must be >= 0, got %d", c.Layout.Padding)
	}
	if c.Layout.RowSpacing < 0 {
		return fmt.Errorf("layout.row_spacing must be >= 0, got %d", c.Layout.RowSpacing)
	}
	if c.Layout.MinGroupWidth < 1 {
		return fmt.Errorf("layout.min_group_width must be >= 1, got %d", c.Layout.MinGroupWidth)
	}

	validThemes := map[string]bool{"minimal": true, "full": true, "monitoring": true}
	if !validThemes[c.Display.Theme] {
		return fmt.Errorf("display.theme must be 'minimal', 'full', or 'monitoring', got %q", c.Display.Theme)
	}
	if c.Display.MessageLines < 1 {
		return fmt.Errorf("display.message_lines must be >= 1, got %d", c.Display.MessageLines)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file, creating parent
// directories as needed.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
