package ws

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irchook/irchook/pkg/logging"
)

var upgrader = websocket.Upgrader{}

// gatewayServer upgrades one connection and runs fn with it.
func gatewayServer(t *testing.T, fn func(*websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()
		fn(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestNextYieldsTextFrames(t *testing.T) {
	url := gatewayServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(":p:first line"))
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02})
		_ = conn.WriteMessage(websocket.TextMessage, []byte(":p:second line"))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		// Wait for the client's close reply before tearing down.
		_, _, _ = conn.ReadMessage()
	})

	c, err := Dial(context.Background(), url, logging.Nop())
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, ":p:first line", got)

	// The binary frame is skipped.
	got, err = c.Next()
	require.NoError(t, err)
	assert.Equal(t, ":p:second line", got)

	_, err = c.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDialFailure(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/nope", logging.Nop())
	assert.Error(t, err)
}
