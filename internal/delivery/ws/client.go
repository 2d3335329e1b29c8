package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"cafefinder/internal/domain/entity"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	outboxSize     = 64
)

type locationReply struct {
	point entity.Point
	err   error
}

// client owns one websocket connection. writeLoop is the only writer, so
// commands from concurrent session work are serialized through outbox.
type client struct {
	conn   *websocket.Conn
	logger *slog.Logger

	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	pending map[string]chan locationReply
}

func newClient(conn *websocket.Conn, logger *slog.Logger) *client {
	return &client{
		conn:    conn,
		logger:  logger,
		outbox:  make(chan []byte, outboxSize),
		done:    make(chan struct{}),
		pending: make(map[string]chan locationReply),
	}
}

// send queues a command without blocking. A client too slow to drain its
// queue is disconnected.
func (c *client) send(command any) {
	data, err := json.Marshal(command)
	if err != nil {
		c.logger.Error("Failed to encode command", slog.Any("error", err))

		return
	}

	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.outbox <- data:
	case <-c.done:
	default:
		c.logger.Warn("Outbound queue full, closing connection")
		c.close()
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("Websocket write failed", slog.Any("error", err))
				c.close()

				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()

				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))

			return
		}
	}
}

// readLoop decodes events until the connection fails or closes. Malformed
// frames are logged and skipped.
func (c *client) readLoop(handle func(Event)) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("Websocket closed unexpectedly", slog.Any("error", err))
			}

			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			c.logger.Warn("Ignoring malformed event", slog.Any("error", err))

			continue
		}

		handle(event)
	}
}

// expect registers a pending geolocation request.
func (c *client) expect(requestID string) <-chan locationReply {
	reply := make(chan locationReply, 1)

	c.mu.Lock()
	c.pending[requestID] = reply
	c.mu.Unlock()

	return reply
}

func (c *client) forget(requestID string) {
	c.mu.Lock()
	delete(c.pending, requestID)
	c.mu.Unlock()
}

// resolve routes a geolocation reply to its waiting request. Replies for
// unknown or already answered requests are dropped.
func (c *client) resolve(requestID string, reply locationReply) {
	c.mu.Lock()
	ch, ok := c.pending[requestID]
	delete(c.pending, requestID)
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("Dropping reply for unknown geolocation request", slog.String("requestId", requestID))

		return
	}

	ch <- reply
}
