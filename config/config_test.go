package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func validConfig() *Config {
	return &Config{
		Groupsio: GroupsioConfig{
			Hostname: "api.groups.io",
			Version:  "v1",
			APIKey:   "valid-api-key",
			Email:    "me@example.com",
			Password: "secret",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
groupsio:
  api_key: file-key
  email: me@example.com
  password: secret
  timeout: 10s
filter:
  presets:
    bouncing: IsBouncing
  default_expression: not IsBanned
safety:
  dry_run: false
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "api.groups.io", cfg.Groupsio.Hostname)
	assert.Equal(t, "v1", cfg.Groupsio.Version)
	assert.Equal(t, "file-key", cfg.Groupsio.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Groupsio.Timeout)
	assert.True(t, cfg.Groupsio.HasCredentials())
	assert.Equal(t, "IsBouncing", cfg.Filter.Presets["bouncing"])
	assert.Equal(t, "not IsBanned", cfg.Filter.DefaultExpression)
	assert.False(t, cfg.Safety.DryRun)
	assert.True(t, cfg.Safety.Confirm)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
groupsio:
  api_key: file-key
  email: me@example.com
  password: from-file
`)
	t.Setenv("GROUPSIO_API_KEY", "env-key")
	t.Setenv("GROUPSIO_PASSWORD", "env-secret")
	t.Setenv("GROUPSIO_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Groupsio.APIKey)
	assert.Equal(t, "env-secret", cfg.Groupsio.Password)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "token instead of password",
			mutate: func(c *Config) { c.Groupsio.Email, c.Groupsio.Password, c.Groupsio.Token = "", "", "tok" },
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Groupsio.APIKey = "" },
			wantErr: "api_key",
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.Groupsio.APIKey = "your-api-key-here" },
			wantErr: "api_key",
		},
		{
			name:    "email without password",
			mutate:  func(c *Config) { c.Groupsio.Password = "" },
			wantErr: "password",
		},
		{
			name:    "no credentials",
			mutate:  func(c *Config) { c.Groupsio.Email, c.Groupsio.Password = "", "" },
			wantErr: "either email/password or token",
		},
		{
			name:    "password without email",
			mutate:  func(c *Config) { c.Groupsio.Email = "" },
			wantErr: "either email/password or token",
		},
		{
			name:    "bad two factor code",
			mutate:  func(c *Config) { c.Groupsio.TwoFactor = 1234567 },
			wantErr: "two_factor",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets = map[string]string{"x": " "} },
			wantErr: "preset",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "level",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
