package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		ServerURL:      "http://localhost:4000",
		SocketURL:      "ws://localhost:4000/ws",
		SessionDBPath:  "/tmp/duochat-session",
		LogLevel:       "INFO",
		RequestTimeout: 10 * time.Second,
		BackoffBase:    time.Second,
		BackoffCap:     30 * time.Second,
	}
}

func TestValidate_Accepts_A_Complete_Config(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects_Bad_Values(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative server url", func(c *Config) { c.ServerURL = "localhost:4000" }},
		{"http socket url", func(c *Config) { c.SocketURL = "http://localhost:4000/ws" }},
		{"zero backoff base", func(c *Config) { c.BackoffBase = 0 }},
		{"cap below base", func(c *Config) { c.BackoffCap = 500 * time.Millisecond }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)
			require.Error(t, config.Validate())
		})
	}
}
