package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"plusverify/internal/interfaces"
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("PLUSVERIFY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("trials", 100000)
	v.SetDefault("seed", 0)
	v.SetDefault("subject", "plus")
	v.SetDefault("log_level", "info")
	v.SetDefault("pushgateway_url", "")
	v.SetDefault("job_name", "plusverify")
	v.SetDefault("target", "")
}

// DefaultPath returns ~/.config/plusverify/config.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "plusverify", "config.toml"), nil
}

// Load loads configuration from the specified path.
// A missing file is not an error; defaults and environment apply.
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = expandPath(path)

	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m.getConfigFromViper()
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper()
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config, err := m.getConfigFromViper()
	if err != nil {
		return nil, err
	}

	if err := m.applyFlagOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyFlagOverrides applies flag values over the configuration.
// Numeric flags are only recorded when explicitly set, so zero is a real override.
func (m *Manager) applyFlagOverrides(config *interfaces.Config) error {
	if val, exists := m.flags["trials"]; exists && val != nil {
		n, ok := val.(int)
		if !ok {
			return fmt.Errorf("trials flag must be an int, got %T", val)
		}
		config.Trials = n
	}

	if val, exists := m.flags["seed"]; exists && val != nil {
		seed, ok := val.(uint64)
		if !ok {
			return fmt.Errorf("seed flag must be a uint64, got %T", val)
		}
		config.Seed = seed
	}

	if str := m.stringFlag("subject"); str != "" {
		config.Subject = str
	}

	if str := m.stringFlag("log_level"); str != "" {
		config.LogLevel = str
	}

	if str := m.stringFlag("pushgateway_url"); str != "" {
		config.PushgatewayURL = str
	}

	if str := m.stringFlag("job_name"); str != "" {
		config.JobName = str
	}

	if str := m.stringFlag("target"); str != "" {
		config.Target = str
	}

	return nil
}

func (m *Manager) stringFlag(key string) string {
	if val, exists := m.flags[key]; exists && val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if config.Trials < 0 {
		return fmt.Errorf("invalid trials: %d (must be zero or greater)", config.Trials)
	}

	if strings.TrimSpace(config.Subject) == "" {
		return fmt.Errorf("subject must not be empty")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(config.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s (must be 'debug', 'info', 'warn' or 'error')", config.LogLevel)
	}

	if !interfaces.IsValidTarget(config.Target) {
		return fmt.Errorf("invalid target: %s (must be 'stdout', 'stderr', or 'file:/path')", config.Target)
	}

	if config.PushgatewayURL != "" {
		u, err := url.Parse(config.PushgatewayURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid pushgateway_url: %s (must be an http or https URL)", config.PushgatewayURL)
		}
		if config.JobName == "" {
			return fmt.Errorf("job_name is required when pushgateway_url is set")
		}
	}

	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately).
// Numeric keys are converted strictly: a value that does not parse is an error, not zero.
func (m *Manager) getConfigFromViper() (*interfaces.Config, error) {
	trials, err := cast.ToIntE(m.v.Get("trials"))
	if err != nil {
		return nil, fmt.Errorf("invalid trials value %v: %w", m.v.Get("trials"), err)
	}

	seed, err := cast.ToUint64E(m.v.Get("seed"))
	if err != nil {
		return nil, fmt.Errorf("invalid seed value %v: %w", m.v.Get("seed"), err)
	}

	return &interfaces.Config{
		Trials:         trials,
		Seed:           seed,
		Subject:        m.v.GetString("subject"),
		LogLevel:       m.v.GetString("log_level"),
		PushgatewayURL: m.v.GetString("pushgateway_url"),
		JobName:        m.v.GetString("job_name"),
		Target:         expandTarget(m.v.GetString("target")),
	}, nil
}

// expandTarget expands ~ inside a file: target
func expandTarget(target string) string {
	if path, ok := interfaces.FilePath(target); ok {
		return "file:" + expandPath(path)
	}
	return target
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
