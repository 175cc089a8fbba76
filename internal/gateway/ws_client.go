package gateway

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// File payloads arrive base64-encoded inside a single text frame.
	maxMessageSize = 10 << 20
)

// WebSocketClient implements Client on top of a gorilla websocket
// connection, with the usual read/write pump pair.
type WebSocketClient struct {
	Conn *websocket.Conn
	Send chan Envelope

	gateway *Gateway
	session *Session

	closeOnce sync.Once
	done      chan struct{}
}

func NewWebSocketClient(g *Gateway, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		Conn:    conn,
		Send:    make(chan Envelope, 256),
		gateway: g,
		done:    make(chan struct{}),
	}
}

func (c *WebSocketClient) GetSendChannel() chan<- Envelope { return c.Send }

// Close shuts the connection down and stops the write pump. The read
// pump exits on its own once the connection is closed.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.Conn.Close()
	})
}

// Run starts the pumps for an admitted session.
func (c *WebSocketClient) Run(sess *Session) {
	c.session = sess
	go c.writePump()
	go c.readPump()
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.gateway.Disconnect(c.session)
		c.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		c.gateway.HandleEvent(c.session, raw)
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case env := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))

			data, err := json.Marshal(env)
			if err != nil {
				log.Printf("Error encoding frame for %s: %v", c.session.UserID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
