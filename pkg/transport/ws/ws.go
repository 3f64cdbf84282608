package ws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 30 * time.Second
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
)

// Conn is a websocket chat transport: every text frame received from the
// gateway is one raw protocol line. A background goroutine keeps the
// connection alive with pings; read deadlines are pushed forward on every
// pong.
type Conn struct {
	conn   *websocket.Conn
	logger *slog.Logger
	done   chan struct{}
}

// Dial connects to the websocket gateway.
func Dial(ctx context.Context, url string, logger *slog.Logger) (*Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, url, http.Header{})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	c := &Conn{conn: conn, logger: logger, done: make(chan struct{})}

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go c.keepalive()

	logger.Info("connected to websocket gateway", "url", url)
	return c, nil
}

// keepalive pings the gateway until the connection is closed.
func (c *Conn) keepalive() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Next blocks until the gateway sends a text frame and returns it as one raw
// line. A clean close yields io.EOF.
func (c *Conn) Next() (string, error) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "", io.EOF
			}
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("websocket read failed: %w", err)
		}
		if msgType == websocket.TextMessage {
			return string(data), nil
		}
		// Binary frames carry no chat lines; skip them.
	}
}

// Close stops the keepalive loop and closes the connection.
func (c *Conn) Close() error {
	close(c.done)
	deadline := time.Now().Add(writeWait)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return c.conn.Close()
}
