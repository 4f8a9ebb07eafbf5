package interfaces

// Config represents the application configuration
type Config struct {
	Trials         int    `toml:"trials"`
	Seed           uint64 `toml:"seed"`
	Subject        string `toml:"subject"`
	LogLevel       string `toml:"log_level"`
	PushgatewayURL string `toml:"pushgateway_url"`
	JobName        string `toml:"job_name"`
	Target         string `toml:"target"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// SetFlag records a command-line override for a config key
	SetFlag(key string, value interface{})

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}
