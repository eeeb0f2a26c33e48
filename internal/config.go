package internal

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	ServerURL      string        `env:"CHAT_SERVER_URL,required=true"`
	SocketURL      string        `env:"CHAT_SOCKET_URL,required=true"`
	SessionDBPath  string        `env:"SESSION_DB_PATH,required=true"`
	LogLevel       string        `env:"LOG_LEVEL,required=true"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	BackoffBase    time.Duration `env:"RECONNECT_BACKOFF_BASE,default=1s"`
	BackoffCap     time.Duration `env:"RECONNECT_BACKOFF_CAP,default=30s"`
}

// Validate rejects URLs the clients cannot dial before anything connects.
func (c Config) Validate() error {
	server, err := url.Parse(c.ServerURL)
	if err != nil || server.Scheme == "" || server.Host == "" {
		return fmt.Errorf("CHAT_SERVER_URL must be an absolute URL, got %q", c.ServerURL)
	}
	socket, err := url.Parse(c.SocketURL)
	if err != nil || (socket.Scheme != "ws" && socket.Scheme != "wss") {
		return fmt.Errorf("CHAT_SOCKET_URL must be a ws:// or wss:// URL, got %q", c.SocketURL)
	}
	if c.BackoffBase <= 0 || c.BackoffCap < c.BackoffBase {
		return fmt.Errorf("reconnect backoff misconfigured: base %s, cap %s", c.BackoffBase, c.BackoffCap)
	}
	return nil
}
