package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultTheme        = "tokyo-night"
	DefaultStorage      = "json"
	DefaultDayStartHour = 8
	DefaultDayEndHour   = 20
	DefaultBackups      = 10
)

// Config holds application configuration
type Config struct {
	Theme        string            `toml:"theme"`
	WeekStart    int               `toml:"week_start"`
	Storage      string            `toml:"storage"`
	DataPath     string            `toml:"data_path,omitempty"`
	LogFile      string            `toml:"log_file,omitempty"`
	DayStartHour int               `toml:"day_start_hour"`
	DayEndHour   int               `toml:"day_end_hour"`
	Backups      int               `toml:"backups"`
	Settings     map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
	path            string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file. Keys missing from the
// file keep their defaults.
func LoadFromFile(filePath string) (*Config, error) {
	config := defaultConfig()
	config.path = filePath

	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Theme == "" {
		config.Theme = DefaultTheme
	}
	if config.Storage == "" {
		config.Storage = DefaultStorage
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return config, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.WeekStart < 0 || c.WeekStart > 6 {
		return fmt.Errorf("week_start must be between 0 (Sunday) and 6, got %d", c.WeekStart)
	}
	if c.DayStartHour < 0 || c.DayEndHour > 24 || c.DayStartHour >= c.DayEndHour {
		return fmt.Errorf("day hours must satisfy 0 <= day_start_hour < day_end_hour <= 24, got %d and %d",
			c.DayStartHour, c.DayEndHour)
	}
	if c.Backups < 0 {
		return fmt.Errorf("backups must not be negative, got %d", c.Backups)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:           DefaultTheme,
		WeekStart:       1,
		Storage:         DefaultStorage,
		DayStartHour:    DefaultDayStartHour,
		DayEndHour:      DefaultDayEndHour,
		Backups:         DefaultBackups,
		Settings:        make(map[string]string),
		sessionSettings: make(map[string]string),
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, ".config", "rayday")
	return configDir, nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}

	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// Save persists the configuration to the TOML file it was loaded from, or
// the standard location
// Note: session settings are not persisted
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
