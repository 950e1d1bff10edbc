package realtime

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Options tunes the websocket transport.
type Options struct {
	SendBufferSize  int
	WriteWait       time.Duration
	PongWait        time.Duration
	MaxMessageBytes int64
}

// DefaultOptions are used where a field is left zero.
var DefaultOptions = Options{
	SendBufferSize:  32,
	WriteWait:       10 * time.Second,
	PongWait:        60 * time.Second,
	MaxMessageBytes: 64 * 1024,
}

func (o Options) withDefaults() Options {
	d := DefaultOptions
	if o.SendBufferSize > 0 {
		d.SendBufferSize = o.SendBufferSize
	}
	if o.WriteWait > 0 {
		d.WriteWait = o.WriteWait
	}
	if o.PongWait > 0 {
		d.PongWait = o.PongWait
	}
	if o.MaxMessageBytes > 0 {
		d.MaxMessageBytes = o.MaxMessageBytes
	}
	return d
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is one live connection. Membership state lives in the hub;
// the client only pumps bytes between the socket and the hub.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	opts Options
}

// ServeWS upgrades an HTTP request to a websocket connection and
// registers it with the hub.
func ServeWS(hub *Hub, opts Options, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	opts = opts.withDefaults()
	client := &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, opts.SendBufferSize),
		opts: opts,
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump forwards inbound messages to the hub. On any read error the
// connection is unregistered, dropping all of its room memberships.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.opts.MaxMessageBytes)
	c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.hub.inbound <- inboundMessage{client: c, raw: raw}
	}
}

// writePump drains the send channel to the socket and keeps the
// connection alive with pings. Write failures are silently dropped;
// the read side will notice the dead connection and unregister.
func (c *Client) writePump() {
	pingPeriod := c.opts.PongWait * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
