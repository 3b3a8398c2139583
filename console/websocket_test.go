package console

import (
	"context"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/suborbital/vektor/vlog"
)

func TestHandler(t *testing.T) {
	logger := vlog.Default(vlog.Level(vlog.LogLevelError))

	quiet := DispatcherFunc(func(io.Writer, string) error { return nil })

	tests := []struct {
		name  string
		d     Dispatcher
		lines []string
		want  []string
	}{
		{
			name:  "replies with command output",
			d:     echo,
			lines: []string{"god_mode", "spawn_item sword"},
			want:  []string{"GOD_MODE\n", "SPAWN_ITEM SWORD\n"},
		},
		{
			name:  "replies with errors",
			d:     echo,
			lines: []string{"fail"},
			want:  []string{"error: asked to fail\n"},
		},
		{
			name:  "replies ok when a command is silent",
			d:     quiet,
			lines: []string{"noclip"},
			want:  []string{okReply},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(Handler(tt.d, logger))
			defer server.Close()

			conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
			require.NoError(t, err)
			defer conn.Close()

			for i, line := range tt.lines {
				require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(line)))

				msgType, reply, err := conn.ReadMessage()
				require.NoError(t, err)
				assert.Equal(t, websocket.TextMessage, msgType)
				assert.Equal(t, tt.want[i], string(reply))
			}

			require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
		})
	}
}

// startServe runs Serve on a free port and returns a connected client.
func startServe(t *testing.T, ctx context.Context, d Dispatcher) (*websocket.Conn, <-chan error) {
	t.Helper()

	logger := vlog.Default(vlog.Level(vlog.LogLevelError))

	// reserve a free port, then hand it to Serve
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	done := make(chan error, 1)

	go func() {
		done <- Serve(ctx, addr, d, logger)
	}()

	dialed := make(chan *websocket.Conn, 1)
	require.Eventually(t, func() bool {
		c, _, dialErr := websocket.DefaultDialer.Dial("ws://"+addr+"/console", nil)
		if dialErr != nil {
			return false
		}

		dialed <- c
		return true
	}, 2*time.Second, 20*time.Millisecond)

	return <-dialed, done
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	conn, done := startServe(t, ctx, echo)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("help")))
	_, reply, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "HELP\n", string(reply))
	conn.Close()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}

func TestServe_DisconnectsClientsOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dispatched := make(chan string, 10)
	recording := DispatcherFunc(func(out io.Writer, line string) error {
		dispatched <- line
		return echo(out, line)
	})

	ctx, cancel := context.WithCancel(context.Background())
	conn, done := startServe(t, ctx, recording)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("god_mode")))
	_, reply, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "GOD_MODE\n", string(reply))

	// the client stays connected while the context ends
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}

	// nothing is dispatched once Serve has returned
	_ = conn.WriteMessage(websocket.TextMessage, []byte("after_shutdown"))

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)

	close(dispatched)

	var lines []string
	for line := range dispatched {
		lines = append(lines, line)
	}

	assert.Equal(t, []string{"god_mode"}, lines)
}

func TestServe_BadAddress(t *testing.T) {
	logger := vlog.Default(vlog.Level(vlog.LogLevelError))

	err := Serve(context.Background(), "not-an-address", echo, logger)
	assert.Error(t, err)
}
