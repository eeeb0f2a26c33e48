package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// CHAT_API_ADDR points at a running messaging server, e.g. http://localhost:4000
	APIAddr string `envconfig:"CHAT_API_ADDR"`
	// CHAT_SOCKET_ADDR is the channel endpoint, e.g. ws://localhost:4000/ws
	SocketAddr string `envconfig:"CHAT_SOCKET_ADDR"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_DEBUG_JSON allows dumping full event payloads
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
