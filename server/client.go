package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"seafling/internal/sim"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
)

const errResumedElsewhere = "voyage resumed on another connection"

// Client represents a WebSocket connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	sessionID  string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
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
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
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
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
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

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
// Prefixes with 0xFF marker byte so WritePump can distinguish from text
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF // binary marker
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(msg string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: msg}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgStart:
		c.handleStart(env.D)
	case MsgResume:
		c.handleResume(env.D)
	case MsgLeave:
		c.handleLeave()
	default:
		sess := c.session()
		if sess == nil {
			return
		}
		c.hub.sessions.MarkActive(sess.ID)
		c.handleGameMessage(sess.Game, env)
	}
}

// handleGameMessage routes messages that act on the bound voyage
func (c *Client) handleGameMessage(g *Game, env InEnvelope) {
	switch env.T {
	case MsgFling:
		var msg FlingMsg
		if err := json.Unmarshal(env.D, &msg); err != nil {
			return
		}
		g.HandleFling(msg.VX, msg.VY)
	case MsgAmmo:
		var msg AmmoMsg
		if err := json.Unmarshal(env.D, &msg); err != nil {
			return
		}
		if !g.SelectAmmo(msg.Ammo) {
			c.sendError("ammo not unlocked")
		}
	case MsgBuy:
		var msg BuyMsg
		if err := json.Unmarshal(env.D, &msg); err != nil {
			return
		}
		if err := g.Buy(msg.Item); err != nil {
			c.sendError(err.Error())
		}
	case MsgSail:
		if err := g.Sail(); err != nil {
			c.sendError(err.Error())
		}
	case MsgPause:
		g.TogglePause()
	case MsgResize:
		var msg ResizeMsg
		if err := json.Unmarshal(env.D, &msg); err != nil {
			return
		}
		g.Resize(msg.W, msg.H)
	}
}

// session returns the voyage this client is bound to, if any. A client
// whose voyage was resumed on another connection loses its binding.
func (c *Client) session() *Session {
	if c.sessionID == "" {
		return nil
	}
	sess, err := c.hub.sessions.GetSession(c.sessionID)
	if err != nil || !sess.Game.IsClient(c) {
		c.sessionID = ""
		return nil
	}
	return sess
}

func (c *Client) handleStart(data json.RawMessage) {
	var msg StartMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
	}
	arena := c.hub.arena
	if msg.W > 0 && msg.H > 0 {
		arena = sim.Arena{W: msg.W, H: msg.H}
	}

	c.handleLeave()
	sess := c.hub.sessions.CreateSession(arena)
	if sess == nil {
		c.sendError("too many active sessions")
		return
	}
	c.bind(sess, false)
}

func (c *Client) handleResume(data json.RawMessage) {
	var msg ResumeMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sid, err := c.hub.tokens.Parse(msg.Token)
	if err != nil {
		c.sendError(ErrInvalidToken.Error())
		return
	}
	sess, err := c.hub.sessions.GetSession(sid)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.hub.tel.Track(TelResume, sid, 0)
	c.bind(sess, true)
}

// bind attaches this client to a voyage and sends the welcome
func (c *Client) bind(sess *Session, resumed bool) {
	token, err := c.hub.tokens.Issue(sess.ID)
	if err != nil {
		log.Printf("token error: %v", err)
		c.sendError("could not issue token")
		return
	}
	if old := c.session(); old != nil && old.ID != sess.ID {
		old.Game.DetachClient(c)
		c.hub.sessions.MarkActive(old.ID)
	}
	c.sessionID = sess.ID
	c.hub.sessions.MarkActive(sess.ID)

	c.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		SID:     sess.ID,
		Token:   token,
		Resumed: resumed,
		Phase:   sess.Game.Phase(),
	}})
	if prev := sess.Game.SetClient(c); prev != nil && prev != Broadcaster(c) {
		prev.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: errResumedElsewhere}})
	}
	if sess.Game.Phase() == PhasePort {
		c.SendJSON(Envelope{T: MsgPort, Data: sess.Game.PortInfo()})
	}
}

// handleLeave abandons the current voyage
func (c *Client) handleLeave() {
	sess := c.session()
	if sess == nil {
		return
	}
	c.hub.sessions.RemoveSession(sess.ID)
	c.sessionID = ""
}
