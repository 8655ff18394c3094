package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/shubhashmahato/kurakani/internal/realtime"
)

// Client pumps frames between one websocket connection and its session. The
// read pump decodes inbound action envelopes and dispatches them to the
// session sequentially, which is what gives per-connection actions their
// strict ordering. The write pump drains the send queue and keeps the
// connection alive with pings.
type Client struct {
	conn    *websocket.Conn
	session *realtime.Session
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	log     *logrus.Entry
}

// inboundFrame is the wire envelope for client actions.
type inboundFrame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func newClient(conn *websocket.Conn, session *realtime.Session) *Client {
	return &Client{
		conn:    conn,
		session: session,
		send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
		log: logrus.WithFields(logrus.Fields{
			"component": "ws_client",
			"conn_id":   session.ID,
			"user_id":   session.UserID,
		}),
	}
}

// Send queues a message for delivery. Non-blocking: reports false when the
// client's queue is full or the client is shutting down, so one slow
// connection never stalls a broadcast.
func (c *Client) Send(message []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- message:
		return true
	default:
		c.log.Warn("Client send queue full, dropping message")
		return false
	}
}

// Run starts the read and write pumps. It returns immediately; the pumps own
// the connection from here on.
func (c *Client) Run() {
	go c.writePump()
	go c.readPump()
}

// close tears the client down exactly once: session cleanup first (rooms,
// presence, router detach), then the transport.
func (c *Client) close() {
	c.once.Do(func() {
		c.session.Close()
		close(c.done)
		c.conn.Close()
	})
}

// readPump pumps inbound frames from the websocket to the session. It runs
// in its own goroutine; exit triggers full cleanup.
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("WebSocket read error (unexpected close)")
			} else {
				c.log.Debug("WebSocket connection closed")
			}
			return
		}
		if messageType != websocket.TextMessage {
			c.log.Debugf("Ignoring non-text message type: %d", messageType)
			continue
		}
		c.dispatch(message)
	}
}

// dispatch decodes one action envelope and hands it to the session. A frame
// that fails to decode affects only this connection; it is logged and
// skipped.
func (c *Client) dispatch(raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.log.WithError(err).Warn("Client: malformed action envelope, skipping")
		return
	}

	switch frame.Action {
	case realtime.ActionPresenceAnnounce:
		var data struct {
			UserID string `json:"userId"`
		}
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			c.log.WithError(err).Warn("Client: bad presence:announce payload")
			return
		}
		c.session.Announce(data.UserID)

	case realtime.ActionPresenceRetire:
		var data struct {
			UserID string `json:"userId"`
		}
		if err := json.Unmarshal(frame.Data, &data); err != nil {
			c.log.WithError(err).Warn("Client: bad presence:retire payload")
			return
		}
		c.session.Retire(data.UserID)

	case realtime.ActionRoomJoin, realtime.ActionRoomLeave:
		var data struct {
			RoomID string `json:"roomId"`
		}
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.RoomID == "" {
			c.log.Warn("Client: bad room action payload")
			return
		}
		if frame.Action == realtime.ActionRoomJoin {
			c.session.Join(data.RoomID)
		} else {
			c.session.Leave(data.RoomID)
		}

	case realtime.ActionTypingStart, realtime.ActionTypingStop:
		var data realtime.TypingPayload
		if err := json.Unmarshal(frame.Data, &data); err != nil || data.RoomID == "" {
			c.log.Warn("Client: bad typing payload")
			return
		}
		c.session.Typing(data.RoomID, data.Username, frame.Action == realtime.ActionTypingStart)

	default:
		c.log.WithField("action", frame.Action).Warn("Client: unknown action")
	}
}

// writePump pumps queued messages to the websocket and pings the peer. It
// runs in its own goroutine and exits when the client is closed or the
// transport fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.WithError(err).Warn("Failed to write message to websocket")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("Failed to send ping, closing")
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
