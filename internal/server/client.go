package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"governor/internal/log"
	"governor/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// ClientType distinguishes table screens from player connections.
type ClientType int

const (
	ClientTV     ClientType = 0
	ClientPlayer ClientType = 1
)

var (
	errTableScreen = errors.New("the table screen has no seat")
	errNotSeated   = errors.New("join the game first")
	errSeatBound   = errors.New("this connection already plays another seat")
)

// Client is one WebSocket connection, either a phone bound to a seat or a
// table screen.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	Type ClientType

	mu       sync.RWMutex
	playerID string // set once, on connect or on the first join
}

func NewClient(hub *Hub, conn *websocket.Conn, playerID string, clientType ClientType) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		playerID: playerID,
		Type:     clientType,
	}
}

// PlayerID is the seat this connection plays, empty for table screens and
// phones that have not joined yet.
func (c *Client) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// bind ties the connection to a seat. An empty id keeps the current seat.
func (c *Client) bind(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case id == "" && c.playerID == "":
		return errNotSeated
	case id == "" || id == c.playerID:
		return nil
	case c.playerID != "":
		return errSeatBound
	}
	c.playerID = id
	return nil
}

// admit parses a frame and checks that this connection may send it. Join
// messages bind the connection to their seat here, so the hub only sees
// messages from seated phones or table setup commands.
func (c *Client) admit(raw []byte) (protocol.Envelope, error) {
	var env protocol.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, fmt.Errorf("malformed message: %w", err)
	}
	switch {
	case env.Type == protocol.MsgJoin:
		if c.Type == ClientTV {
			return env, errTableScreen
		}
		var join protocol.JoinMsg
		if err := env.Decode(&join); err != nil {
			return env, errors.New("invalid join message")
		}
		if err := c.bind(join.PlayerID); err != nil {
			return env, err
		}
	case protocol.IsSetupMessage(env.Type):
	case env.Type == protocol.MsgReady, env.Type == protocol.MsgUndo, protocol.IsAction(env.Type):
		if c.Type == ClientTV {
			return env, errTableScreen
		}
		if c.PlayerID() == "" {
			return env, errNotSeated
		}
	default:
		return env, fmt.Errorf("unknown message type %q", env.Type)
	}
	return env, nil
}

// ReadPump reads messages from the WebSocket and forwards admitted ones to
// the hub until the connection drops or the room closes.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.detach(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("ws read error from %s: %v", c.PlayerID(), err)
			}
			return
		}
		env, err := c.admit(message)
		if err != nil {
			log.Debug("game %s: refused %q from %s: %v", c.hub.gameID, env.Type, c.PlayerID(), err)
			c.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: err.Error()}))
			continue
		}
		if !c.hub.enqueue(IncomingMessage{Client: c, Envelope: env}) {
			return
		}
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEnvelope queues a typed message for this client.
func (c *Client) SendEnvelope(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Error("marshal %s: %v", env.Type, err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn("client %s send buffer full, dropping %s", c.PlayerID(), env.Type)
	}
}

// IncomingMessage pairs an admitted message with its source client.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
}
