package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512 * 1024

	// Send buffer size
	sendBufferSize = 256
)

// client pumps channel events to one websocket peer and peer frames back to
// the channel.
type client struct {
	conn    *websocket.Conn
	channel ports.Channel
	userID  string
	send    chan []byte
	done    chan struct{}
	logger  *zap.Logger
	metrics *observability.Metrics
	cleanup func()
}

func newClient(conn *websocket.Conn, channel ports.Channel, userID string, logger *zap.Logger, metrics *observability.Metrics) *client {
	return &client{
		conn:    conn,
		channel: channel,
		userID:  userID,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// start subscribes to the board channel, announces presence and launches the
// read and write pumps.
func (c *client) start(ctx context.Context, user ports.PresenceUser) error {
	cleanup, err := c.channel.Subscribe(ctx, c.onEvent, nil)
	if err != nil {
		return err
	}
	c.cleanup = cleanup

	if err := c.channel.TrackPresence(ctx, user); err != nil {
		c.logger.Warn("failed to track presence", zap.Error(err))
	}

	c.metrics.ActiveConnections.Inc()
	go c.writePump()
	go c.readPump()
	return nil
}

// onEvent forwards a channel event to the peer as a JSON frame. The send
// channel is never closed; a delivery racing the teardown lands in the done
// case instead.
func (c *client) onEvent(event ports.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("failed to marshal event", zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	case <-c.done:
	default:
		c.logger.Warn("peer send buffer full, dropping event",
			zap.String("type", string(event.Type)),
		)
	}
}

// readPump reads peer frames and republishes them on the board channel. The
// sender id is always overwritten with the authenticated user so a peer
// cannot spoof another sender.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var event ports.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			c.logger.Warn("discarding malformed frame", zap.Error(err))
			continue
		}

		switch event.Type {
		case ports.EventCursor, ports.EventObjectUpsert, ports.EventObjectDelete, ports.EventAIResult:
		default:
			continue
		}

		event.SenderID = c.userID
		if event.Cursor != nil {
			event.Cursor.UserID = c.userID
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		if err := c.channel.Broadcast(ctx, event); err != nil {
			c.logger.Warn("failed to broadcast peer event", zap.Error(err))
		}
		cancel()
	}
}

// writePump writes queued frames and keepalive pings to the peer
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close tears down the subscription and the connection exactly once
func (c *client) close() {
	if c.cleanup != nil {
		c.cleanup()
		c.cleanup = nil
		c.metrics.ActiveConnections.Dec()
	}
	close(c.done)
	_ = c.conn.Close()
}
