package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const envPrefix = "GROUPSIO"

// secretEnv maps config keys to the short environment variables that
// override them.
var secretEnv = map[string]string{
	"groupsio.api_key":  "GROUPSIO_API_KEY",
	"groupsio.email":    "GROUPSIO_EMAIL",
	"groupsio.password": "GROUPSIO_PASSWORD",
	"groupsio.token":    "GROUPSIO_TOKEN",
}

func init() {
	// Report validation errors with the keys used in config.yaml.
	validation.ErrorTag = "mapstructure"
}

// Load loads the configuration from file and environment. Without an
// explicit path a missing config file is not an error; every setting can
// come from GROUPSIO_* variables instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range secretEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".groupsio"))
		}
		v.AddConfigPath("/etc/groupsio/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Groups.io defaults
	v.SetDefault("groupsio.hostname", "api.groups.io")
	v.SetDefault("groupsio.version", "v1")
	v.SetDefault("groupsio.api_key", "")
	v.SetDefault("groupsio.email", "")
	v.SetDefault("groupsio.password", "")
	v.SetDefault("groupsio.two_factor", 0)
	v.SetDefault("groupsio.token", "")
	v.SetDefault("groupsio.timeout", "30s")
	v.SetDefault("groupsio.user_agent", "groupsio-cli")

	v.SetDefault("filter.default_expression", "")

	// Safety defaults
	v.SetDefault("safety.dry_run", true)
	v.SetDefault("safety.confirm", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	gio := &cfg.Groupsio
	if err := validation.ValidateStruct(gio,
		validation.Field(&gio.Hostname, validation.Required),
		validation.Field(&gio.Version, validation.Required),
		validation.Field(&gio.APIKey, validation.Required, validation.NotIn("your-api-key-here")),
		validation.Field(&gio.Password, validation.When(gio.Email != "", validation.Required)),
		validation.Field(&gio.TwoFactor, validation.Min(0), validation.Max(999999)),
		validation.Field(&gio.Timeout, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("groupsio: %w", err)
	}

	if !gio.HasCredentials() && gio.Token == "" {
		return fmt.Errorf("groupsio: either email/password or token must be set")
	}

	for name, expr := range cfg.Filter.Presets {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter: preset %q has an empty expression", name)
		}
	}

	logging := &cfg.Logging
	if err := validation.ValidateStruct(logging,
		validation.Field(&logging.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&logging.Format, validation.Required, validation.In("console", "json")),
	); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	return nil
}
