package console

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/suborbital/vektor/vlog"
)

const okReply = "ok\n"

var upgrader = websocket.Upgrader{}

// connSet tracks the open console connections so they can be closed on
// shutdown. http.Server.Shutdown does not touch hijacked connections.
type connSet struct {
	lock   sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
	group  sync.WaitGroup
}

func newConnSet() *connSet {
	return &connSet{conns: map[*websocket.Conn]struct{}{}}
}

// add reports false once the set is closed; the caller must then drop conn.
func (c *connSet) add(conn *websocket.Conn) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return false
	}

	c.conns[conn] = struct{}{}
	c.group.Add(1)

	return true
}

func (c *connSet) remove(conn *websocket.Conn) {
	c.lock.Lock()
	delete(c.conns, conn)
	c.lock.Unlock()

	c.group.Done()
}

func (c *connSet) isClosed() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.closed
}

// closeAll closes every tracked connection and waits for their handlers to return.
func (c *connSet) closeAll() {
	c.lock.Lock()
	c.closed = true
	for conn := range c.conns {
		conn.Close()
	}
	c.lock.Unlock()

	c.group.Wait()
}

// Handler returns an http.Handler that upgrades to a websocket and treats
// every text message as one command line. Each line gets one text reply:
// the command output, "error: ..." or "ok".
func Handler(d Dispatcher, logger *vlog.Logger) http.Handler {
	return handler(d, logger, newConnSet())
}

func handler(d Dispatcher, logger *vlog.Logger, conns *connSet) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error(errors.Wrap(err, "failed to Upgrade console connection"))
			return
		}

		if !conns.add(conn) {
			conn.Close()
			return
		}

		defer conns.remove(conn)
		defer conn.Close()

		logger.Debug(fmt.Sprintf("console client connected from %s", r.RemoteAddr))

		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				if !conns.isClosed() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Error(errors.Wrap(err, "failed to ReadMessage"))
				}

				return
			}

			if msgType != websocket.TextMessage {
				continue
			}

			reply := new(bytes.Buffer)
			if err := d.Process(reply, string(msg)); err != nil {
				fmt.Fprintf(reply, "error: %s\n", err)
			}

			if reply.Len() == 0 {
				reply.WriteString(okReply)
			}

			if err := conn.WriteMessage(websocket.TextMessage, reply.Bytes()); err != nil {
				if !conns.isClosed() {
					logger.Error(errors.Wrap(err, "failed to WriteMessage"))
				}

				return
			}
		}
	})
}

// Serve runs the websocket console on addr until ctx is done. Connected
// clients are disconnected before it returns.
func Serve(ctx context.Context, addr string, d Dispatcher, logger *vlog.Logger) error {
	conns := newConnSet()

	mux := http.NewServeMux()
	mux.Handle("/console", handler(d, logger, conns))

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to Listen on %s", addr)
	}

	logger.Info(fmt.Sprintf("console listening on ws://%s/console", listener.Addr()))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return errors.Wrap(err, "failed to Serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)

	conns.closeAll()
	<-serveErr

	if shutdownErr != nil {
		return errors.Wrap(shutdownErr, "failed to Shutdown console server")
	}

	return nil
}
