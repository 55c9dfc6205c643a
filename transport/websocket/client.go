package websocket

import (
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"
)

const (
	sendBufferSize = 16
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = pongWait * 9 / 10
)

// client is one websocket connection. Only writePump writes to conn.
type client struct {
	conn *gorilla.Conn
	send chan []byte

	mu       sync.Mutex
	closed   bool
	playerID string
}

func newClient(conn *gorilla.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue - false when the client is gone or too slow to keep up.
func (that *client) enqueue(message []byte) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	select {
	case that.send <- message:
		return true
	default:
		return false
	}
}

func (that *client) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.closed {
		that.closed = true
		close(that.send)
	}
}

func (that *client) setPlayerID(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.playerID = id
}

func (that *client) getPlayerID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.playerID
}

// writePump - drains send and keeps the connection alive with pings.
func (that *client) writePump() error {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(gorilla.CloseMessage, gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""))
				return nil
			}

			if err := that.conn.WriteMessage(gorilla.TextMessage, message); err != nil {
				return err
			}
		case <-ticker.C:
			if err := that.conn.WriteControl(gorilla.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}
