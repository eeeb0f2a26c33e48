package connection

import (
	"context"
	"duochat/contract"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// WebsocketDialer opens the session channel over a websocket. The manager
// never sees the protocol; it only reads and writes frames.
type WebsocketDialer struct {
	url    string
	dialer *websocket.Dialer
}

func NewWebsocketDialer(url string) *WebsocketDialer {
	return &WebsocketDialer{
		url: url,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

func (d *WebsocketDialer) Dial(ctx context.Context, token string) (contract.RawChannel, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := d.dialer.DialContext(ctx, d.url, header)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return &websocketChannel{conn: conn}, nil
}

// websocketChannel adapts a websocket connection to the frame contract.
// Reads happen on the manager's single read loop; writes are serialized
// because gorilla allows only one concurrent writer.
type websocketChannel struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (c *websocketChannel) ReadFrame() (contract.Frame, error) {
	var frame contract.Frame
	err := c.conn.ReadJSON(&frame)
	return frame, err
}

func (c *websocketChannel) WriteFrame(frame contract.Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(frame)
}

func (c *websocketChannel) Close() error {
	return c.conn.Close()
}
