package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Groupsio GroupsioConfig `mapstructure:"groupsio"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Safety   SafetyConfig   `mapstructure:"safety"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GroupsioConfig holds Groups.io API connection details and credentials
type GroupsioConfig struct {
	Hostname  string        `mapstructure:"hostname"`
	Version   string        `mapstructure:"version"`
	APIKey    string        `mapstructure:"api_key"`
	Email     string        `mapstructure:"email"`
	Password  string        `mapstructure:"password"`
	TwoFactor int           `mapstructure:"two_factor"`
	Token     string        `mapstructure:"token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// HasCredentials reports whether a login can be attempted
func (c GroupsioConfig) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}

// FilterConfig contains member filter presets
type FilterConfig struct {
	Presets           map[string]string `mapstructure:"presets"`
	DefaultExpression string            `mapstructure:"default_expression"`
}

// SafetyConfig contains safety-related settings for destructive commands
type SafetyConfig struct {
	DryRun  bool `mapstructure:"dry_run"`
	Confirm bool `mapstructure:"confirm"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
