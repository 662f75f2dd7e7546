package live

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmhq/urm/internal/event"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, have %d", n, h.ClientCount())
}

func TestHubBroadcastsChange(t *testing.T) {
	h := NewHub()
	conn := dialHub(t, h)
	waitForClients(t, h, 1)

	require.NoError(t, h.HandleEvent(context.Background(), event.NewUserCreated("42")))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var msg ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, "changed", msg.Type)
	assert.Equal(t, "user", msg.Entity)
}

func TestHubPingPong(t *testing.T) {
	h := NewHub()
	conn := dialHub(t, h)
	waitForClients(t, h, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, wsjson.Write(ctx, conn, map[string]string{"type": "ping"}))

	var msg ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, "pong", msg.Type)
}

func TestHubPrunesDisconnectedClients(t *testing.T) {
	h := NewHub()
	conn := dialHub(t, h)
	waitForClients(t, h, 1)

	conn.Close(websocket.StatusNormalClosure, "bye")
	waitForClients(t, h, 0)

	// Broadcasting with nobody connected is fine.
	assert.NoError(t, h.HandleEvent(context.Background(), event.NewUserDeleted("1")))
}
