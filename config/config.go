package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the eventhall server.
type Config struct {
	// Listen is the address the eventhall server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel controls the verbosity of the server logs.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Session holds the cookie session configuration.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
}

// DatabaseConfig holds the sqlite database configuration.
type DatabaseConfig struct {
	// Path is the path to the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// SessionConfig holds the cookie session configuration.
type SessionConfig struct {
	// Key is the key used to authenticate session cookies.
	// If empty, a random key is generated at startup and sessions
	// won't survive a restart.
	Key string `yaml:"key" mapstructure:"key"`
	// MaxAge is the maximum age of a session in seconds.
	MaxAge int `yaml:"max_age" mapstructure:"max_age"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// If no config file is found, defaults and environment variables are used.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("EVENTHALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.eventhall")
		v.AddConfigPath("/etc/eventhall")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with EVENTHALL_ prefix will override config file values")
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3090")
	v.SetDefault("log_level", "info")
	v.SetDefault("database.path", "./data/eventhall.db")
	v.SetDefault("session.key", "")
	v.SetDefault("session.max_age", 172800) // 48 hours
}

func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Session == nil {
		return fmt.Errorf("session config must not be empty")
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("session max_age must be positive")
	}
	return nil
}
