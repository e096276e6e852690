package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080", Mode: "debug", Timezone: "Asia/Kuala_Lumpur"},
		Database:  DatabaseConfig{Driver: "sqlite", Path: "data/test.db"},
		JWT:       JWTConfig{Secret: "dev-secret"},
		AI:        AIConfig{Provider: "mock", Temperature: 0.3, TimeoutSeconds: 30, RetryAttempts: 2},
		RateLimit: RateLimitConfig{MaxRequests: 60, WindowMinutes: 1},
	}
}

func TestValidate_Accepts(t *testing.T) {
	require.NoError(t, Validate(validConfig()))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Config)
		want string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "driver"},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, "path"},
		{"mysql without host", func(c *Config) { c.Database.Driver = "mysql" }, "host"},
		{"unknown provider", func(c *Config) { c.AI.Provider = "llama" }, "provider"},
		{"redis without host", func(c *Config) { c.Redis.Enabled = true }, "host"},
		{"temperature too high", func(c *Config) { c.AI.Temperature = 3 }, "temperature"},
		{"short release secret", func(c *Config) { c.Server.Mode = "release" }, "JWT secret is too short"},
		{"bad timezone", func(c *Config) { c.Server.Timezone = "Mars/Olympus" }, "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.edit(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestServerLocation(t *testing.T) {
	assert.Equal(t, "UTC", ServerConfig{}.Location().String())
	assert.Equal(t, "Asia/Kuala_Lumpur", ServerConfig{Timezone: "Asia/Kuala_Lumpur"}.Location().String())
}
